package category

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Repository provides access to category rows.
type Repository interface {
	List(limit int) ([]CategoryItem, error)
	// FindByNames returns categories whose name matches any of names,
	// ignoring case. Order follows the first matching name.
	FindByNames(ctx context.Context, names []string) ([]CategoryItem, error)
	ListChildren(parentID int) ([]CategoryItem, error)
}

// InMemoryRepository is used by tests and local seeding.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []CategoryItem
}

func NewInMemoryRepository(seed []CategoryItem) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]CategoryItem, len(seed))}
	copy(r.storage, seed)
	return r
}

func (r *InMemoryRepository) List(limit int) ([]CategoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]CategoryItem, len(r.storage))
	copy(out, r.storage)
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryID < out[j].CategoryID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *InMemoryRepository) FindByNames(ctx context.Context, names []string) ([]CategoryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]CategoryItem, 0)
	seen := make(map[int]bool)
	for _, n := range names {
		for _, c := range r.storage {
			if seen[c.CategoryID] || !strings.EqualFold(c.CategoryName, n) {
				continue
			}
			seen[c.CategoryID] = true
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) ListChildren(parentID int) ([]CategoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]CategoryItem, 0)
	for _, c := range r.storage {
		if c.ParentCategoryID != nil && *c.ParentCategoryID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}
