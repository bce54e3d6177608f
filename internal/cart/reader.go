package cart

import (
	"context"

	"github.com/wichananm65/online-supermarket/internal/category"
)

// LineSource lists the lines of a cart. A missing cart has no lines.
type LineSource interface {
	Lines(ctx context.Context, cartID int) ([]LineView, error)
}

// Reader resolves a cart to the sets the recommendation engine works on.
type Reader struct {
	src     LineSource
	aliases *category.AliasTable
}

func NewReader(src LineSource, aliases *category.AliasTable) *Reader {
	if aliases == nil {
		aliases = category.DefaultAliasTable()
	}
	return &Reader{src: src, aliases: aliases}
}

func (r *Reader) Lines(ctx context.Context, cartID int) ([]LineView, error) {
	if cartID <= 0 {
		return nil, ErrInvalidCartID
	}
	lines, err := r.src.Lines(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if lines == nil {
		lines = []LineView{}
	}
	return lines, nil
}

// Subcategories returns the canonical subcategory keys of the cart in
// first-seen order.
func (r *Reader) Subcategories(ctx context.Context, cartID int) ([]category.Key, error) {
	lines, err := r.Lines(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return KeysOf(lines, r.aliases), nil
}

func (r *Reader) ProductIDs(ctx context.Context, cartID int) ([]int, error) {
	lines, err := r.Lines(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return IDsOf(lines), nil
}

// KeysOf canonicalises the subcategory labels of lines. Lines without a
// label are skipped.
func KeysOf(lines []LineView, aliases *category.AliasTable) []category.Key {
	seen := make(map[category.Key]bool, len(lines))
	out := make([]category.Key, 0, len(lines))
	for _, l := range lines {
		k := aliases.Canonical(l.SubcategoryLabel)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// IDsOf returns the distinct product ids of lines.
func IDsOf(lines []LineView) []int {
	seen := make(map[int]bool, len(lines))
	out := make([]int, 0, len(lines))
	for _, l := range lines {
		if seen[l.ProductID] {
			continue
		}
		seen[l.ProductID] = true
		out = append(out, l.ProductID)
	}
	return out
}
