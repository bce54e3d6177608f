package cart

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/wichananm65/online-supermarket/internal/category"
	"github.com/wichananm65/online-supermarket/internal/product"
)

func strPtr(s string) *string { return &s }

func newReader() *Reader {
	catalog := []product.Product{
		{ID: 1, Name: "Tivi A", Subcategory: strPtr("Tivi")},
		{ID: 2, Name: "Tivi B", Subcategory: strPtr("TV")},
		{ID: 3, Name: "Loa A", Subcategory: strPtr("Loa âm thanh")},
		{ID: 4, Name: "Gift card"},
		{ID: 5, Name: "Xe dap", Subcategory: strPtr("Xe đạp")},
	}
	owners := []Owner{
		{ID: 1, Cart: map[int]int{1: 1, 2: 3, 3: 1, 4: 2, 5: 1}},
		{ID: 2, Cart: map[int]int{}},
	}
	return NewReader(NewInMemoryRepository(owners, catalog), category.DefaultAliasTable())
}

func TestReader_Subcategories(t *testing.T) {
	got, err := newReader().Subcategories(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []category.Key{"tivi", "loa", "xe_dap"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Subcategories = %v, want %v", got, want)
	}
}

func TestReader_ProductIDs(t *testing.T) {
	got, err := newReader().ProductIDs(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("ProductIDs = %v", got)
	}
}

func TestReader_EmptyAndMissingCarts(t *testing.T) {
	r := newReader()
	for _, id := range []int{2, 99} {
		keys, err := r.Subcategories(context.Background(), id)
		if err != nil || len(keys) != 0 {
			t.Fatalf("cart %d: expected empty set, got %v %v", id, keys, err)
		}
		ids, err := r.ProductIDs(context.Background(), id)
		if err != nil || len(ids) != 0 {
			t.Fatalf("cart %d: expected no ids, got %v %v", id, ids, err)
		}
	}
}

func TestReader_InvalidID(t *testing.T) {
	if _, err := newReader().Lines(context.Background(), 0); !errors.Is(err, ErrInvalidCartID) {
		t.Fatalf("expected ErrInvalidCartID, got %v", err)
	}
}

func TestParseCartID(t *testing.T) {
	cases := map[string]bool{"42": true, " 7 ": true, "0": false, "-3": false, "abc": false, "": false, "64f1a2b3c4d5e6f7a8b9c0d1": false}
	for in, ok := range cases {
		_, err := ParseCartID(in)
		if ok && err != nil {
			t.Errorf("ParseCartID(%q) unexpected error %v", in, err)
		}
		if !ok && !errors.Is(err, ErrInvalidCartID) {
			t.Errorf("ParseCartID(%q) expected ErrInvalidCartID, got %v", in, err)
		}
	}
}
