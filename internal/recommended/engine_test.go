package recommended

import (
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/wichananm65/online-supermarket/internal/cart"
	"github.com/wichananm65/online-supermarket/internal/category"
	"github.com/wichananm65/online-supermarket/internal/product"
	"github.com/wichananm65/online-supermarket/internal/rule"
)

func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }

func seedCategories() []category.CategoryItem {
	return []category.CategoryItem{
		{CategoryID: 10, CategoryName: "Tivi"},
		{CategoryID: 11, CategoryName: "Loa"},
		{CategoryID: 20, CategoryName: "Sofa"},
	}
}

func tvAndSpeakerCatalog() []product.Product {
	return []product.Product{
		{ID: 1, Name: "Tivi A", Price: 100, Score: 3, SubcategoryID: intPtr(10), Subcategory: strPtr("Tivi"), Pic: strPtr("/t1.png")},
		{ID: 2, Name: "Tivi B", Price: 200, Score: 5, SubcategoryID: intPtr(10), Subcategory: strPtr("Tivi")},
		{ID: 3, Name: "Tivi C", Price: 300, Score: 1, SubcategoryID: intPtr(10), Subcategory: strPtr("TV")},
		{ID: 4, Name: "Loa A", Price: 50, Score: 4, SubcategoryID: intPtr(11), Subcategory: strPtr("Loa")},
		{ID: 5, Name: "Loa B", Price: 60, Score: 2, SubcategoryID: intPtr(11), Subcategory: strPtr("Loa")},
		{ID: 6, Name: "Loa C", Price: 70, Score: 9, SubcategoryID: intPtr(11), Subcategory: strPtr("Loa")},
		{ID: 7, Name: "Loa D", Price: 80, Score: 7, SubcategoryID: intPtr(11), Subcategory: strPtr("Loa")},
		{ID: 8, Name: "Loa E", Price: 90, Score: 6, SubcategoryID: intPtr(11), Subcategory: strPtr("Loa")},
	}
}

func tvToSpeaker() []rule.Rule {
	return []rule.Rule{{Antecedents: []category.Key{"tivi"}, Consequents: []category.Key{"loa"}, Confidence: 0.6, Lift: 1.8}}
}

type fixture struct {
	carts      CartReader
	categories CategoryFinder
	catalog    Catalog
	popularity Popularity
	rules      rule.Store
}

func newFixture(catalog []product.Product, owners []cart.Owner, rules []rule.Rule) *fixture {
	products := product.NewInMemoryRepository(catalog)
	return &fixture{
		carts:      cart.NewReader(cart.NewInMemoryRepository(owners, catalog), nil),
		categories: category.NewInMemoryRepository(seedCategories()),
		catalog:    products,
		popularity: product.NewScorePopularity(products),
		rules:      rule.NewStaticStore(rules),
	}
}

func (f *fixture) engine(opts ...Option) *Engine {
	return NewEngine(f.carts, f.categories, f.catalog, f.popularity, f.rules, opts...)
}

func ids(cands []product.Candidate) []int {
	out := make([]int, len(cands))
	for i, c := range cands {
		out[i] = c.ID
	}
	return out
}

func TestRecommend_SameCategoryThenRules(t *testing.T) {
	f := newFixture(tvAndSpeakerCatalog(), []cart.Owner{{ID: 1, Cart: map[int]int{1: 1}}}, tvToSpeaker())

	res, err := f.engine().Recommend(context.Background(), 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success || res.Message != MsgRetrieved {
		t.Fatalf("unexpected result header %+v", res)
	}
	got := ids(res.Products)
	want := []int{2, 3, 6, 7, 8, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRecommend_MalformedRuleFileFallsBackToPopularity(t *testing.T) {
	catalog := append(tvAndSpeakerCatalog(), product.Product{ID: 9, Name: "Sofa", Price: 900, Score: 8, SubcategoryID: intPtr(20), Subcategory: strPtr("Sofa")})
	f := newFixture(catalog, []cart.Owner{{ID: 1, Cart: map[int]int{1: 1}}}, nil)
	path := filepath.Join(t.TempDir(), "rules.json")
	if err := os.WriteFile(path, []byte(`[{"antecedents": ["Tivi"], oops`), 0o644); err != nil {
		t.Fatal(err)
	}
	f.rules = rule.NewFileStore(path, nil)

	res, err := f.engine(WithTarget(4)).Recommend(context.Background(), 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Success {
		t.Fatalf("expected a successful result, got %+v", res)
	}
	got := ids(res.Products)
	// same-category first, then best score across the catalog
	want := []int{2, 3, 6, 9}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRecommend_LowLiftRulesAreIgnored(t *testing.T) {
	rules := []rule.Rule{{Antecedents: []category.Key{"tivi"}, Consequents: []category.Key{"loa"}, Lift: 0.7}}
	catalog := append(tvAndSpeakerCatalog(), product.Product{ID: 9, Name: "Sofa", Price: 900, Score: 100, SubcategoryID: intPtr(20), Subcategory: strPtr("Sofa")})
	f := newFixture(catalog, []cart.Owner{{ID: 1, Cart: map[int]int{1: 1}}}, rules)

	res, _ := f.engine(WithTarget(3)).Recommend(context.Background(), 1, 0)
	got := ids(res.Products)
	if len(got) != 3 || got[2] != 9 {
		t.Fatalf("expected popularity to fill the last slot, got %v", got)
	}
}

func TestRecommend_AliasWithoutCatalogCategory(t *testing.T) {
	catalog := []product.Product{
		{ID: 1, Name: "Rice cooker", Price: 10, Score: 1, Subcategory: strPtr("Nồi cơm điện")},
		{ID: 2, Name: "Sofa", Price: 900, Score: 3, SubcategoryID: intPtr(20), Subcategory: strPtr("Sofa")},
	}
	f := newFixture(catalog, []cart.Owner{{ID: 1, Cart: map[int]int{1: 1}}}, nil)

	res, err := f.engine().Recommend(context.Background(), 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(res.Products); len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected only the popular sofa, got %v", got)
	}
}

func TestRecommend_EmptyCartUsesPopularity(t *testing.T) {
	f := newFixture(tvAndSpeakerCatalog(), nil, tvToSpeaker())

	res, _ := f.engine(WithTarget(2)).Recommend(context.Background(), 77, 0)
	if got := ids(res.Products); len(got) != 2 || got[0] != 6 || got[1] != 7 {
		t.Fatalf("expected top scored products, got %v", got)
	}
}

func TestRecommend_NothingToRecommend(t *testing.T) {
	catalog := []product.Product{{ID: 1, Name: "Tivi A", SubcategoryID: intPtr(10), Subcategory: strPtr("Tivi")}}
	f := newFixture(catalog, []cart.Owner{{ID: 1, Cart: map[int]int{1: 1}}}, tvToSpeaker())

	res, err := f.engine().Recommend(context.Background(), 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Success || res.Message != MsgNotFound || res.Products == nil || len(res.Products) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestRecommend_InvalidCartID(t *testing.T) {
	f := newFixture(tvAndSpeakerCatalog(), nil, nil)
	for _, id := range []int{0, -3} {
		if _, err := f.engine().Recommend(context.Background(), id, 0); !errors.Is(err, cart.ErrInvalidCartID) {
			t.Fatalf("cart %d: expected ErrInvalidCartID, got %v", id, err)
		}
	}
}

type failingCarts struct{}

func (failingCarts) Lines(context.Context, int) ([]cart.LineView, error) {
	return nil, errors.New("connection refused")
}

func TestRecommend_CartFailureIsAResult(t *testing.T) {
	f := newFixture(tvAndSpeakerCatalog(), nil, nil)
	f.carts = failingCarts{}

	res, err := f.engine().Recommend(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Success || res.Message != MsgError || len(res.Products) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

type failingCatalog struct{ calls int }

func (c *failingCatalog) ListBySubcategory(context.Context, int, []int) ([]product.Candidate, error) {
	c.calls++
	return nil, errors.New("timeout")
}

func (c *failingCatalog) ListBySubcategories(context.Context, []int, []int, int) ([]product.Candidate, error) {
	c.calls++
	return nil, errors.New("timeout")
}

func TestRecommend_PoolFailureDegrades(t *testing.T) {
	f := newFixture(tvAndSpeakerCatalog(), []cart.Owner{{ID: 1, Cart: map[int]int{1: 1}}}, tvToSpeaker())
	f.catalog = &failingCatalog{}

	res, err := f.engine(WithTarget(3)).Recommend(context.Background(), 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := ids(res.Products); len(got) != 3 || got[0] != 6 {
		t.Fatalf("expected popularity results, got %v", got)
	}
}

func TestRecommend_OpenBreakerShortCircuits(t *testing.T) {
	f := newFixture(tvAndSpeakerCatalog(), []cart.Owner{{ID: 1, Cart: map[int]int{1: 1}}}, tvToSpeaker())
	inner := &failingCatalog{}
	f.catalog = GuardCatalog(inner, BreakerSettings{FailureThreshold: 2})
	e := f.engine(WithTarget(3))

	for i := 0; i < 3; i++ {
		if _, err := e.Recommend(context.Background(), 1, 0); err != nil {
			t.Fatal(err)
		}
	}
	// the first request trips the breaker, later ones never reach the catalog
	if inner.calls != 2 {
		t.Fatalf("expected 2 catalog calls before opening, got %d", inner.calls)
	}
}

func TestRecommend_Invariants(t *testing.T) {
	catalog := tvAndSpeakerCatalog()
	catalog = append(catalog,
		product.Product{ID: 9, Name: "Sofa A", Score: 2, SubcategoryID: intPtr(20), Subcategory: strPtr("Sofa")},
		product.Product{ID: 10, Name: "Sofa B", Score: 3, SubcategoryID: intPtr(20), Subcategory: strPtr("Sofa")},
	)
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		items := map[int]int{}
		for _, p := range catalog {
			if rng.Intn(3) == 0 {
				items[p.ID] = 1 + rng.Intn(3)
			}
		}
		target := 1 + rng.Intn(8)
		f := newFixture(catalog, []cart.Owner{{ID: 5, Cart: items}}, tvToSpeaker())
		res, err := f.engine().Recommend(context.Background(), 5, target)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Products) > target {
			t.Fatalf("round %d: %d products over target %d", round, len(res.Products), target)
		}
		seen := map[int]bool{}
		for _, p := range res.Products {
			if items[p.ID] > 0 {
				t.Fatalf("round %d: recommended cart product %d", round, p.ID)
			}
			if seen[p.ID] {
				t.Fatalf("round %d: duplicate product %d", round, p.ID)
			}
			if p.Images == nil {
				t.Fatalf("round %d: nil images for %d", round, p.ID)
			}
			seen[p.ID] = true
		}
		if want := min(target, len(catalog)-len(items)); len(res.Products) != want {
			t.Fatalf("round %d: expected %d products, got %d", round, want, len(res.Products))
		}
	}
}
