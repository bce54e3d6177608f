package product

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var (
	ErrNotFound = errors.New("product not found")
)

type Repository interface {
	List() []Product
	GetByID(id int) (Product, error)
	ListByCategoryID(catID int) []Product
}

// Catalog is the read side used by recommendation pools. Every method
// skips the ids in exclude.
type Catalog interface {
	ListBySubcategory(ctx context.Context, subcategoryID int, exclude []int) ([]Candidate, error)
	// ListBySubcategories orders by score, best first, and returns at most limit rows.
	ListBySubcategories(ctx context.Context, subcategoryIDs []int, exclude []int, limit int) ([]Candidate, error)
	ListPopular(ctx context.Context, exclude []int, limit int) ([]Candidate, error)
	// ListCandidatesByIDs keeps the order of ids.
	ListCandidatesByIDs(ctx context.Context, ids []int) ([]Candidate, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Product, 0, len(seed))}
	r.storage = append(r.storage, seed...)
	return r
}

func (r *InMemoryRepository) List() []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, len(r.storage))
	copy(out, r.storage)
	return out
}

func (r *InMemoryRepository) GetByID(id int) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) ListByCategoryID(catID int) []Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Product, 0)
	for _, p := range r.storage {
		if p.SubcategoryID != nil && *p.SubcategoryID == catID {
			out = append(out, p)
		}
	}
	return out
}

func (r *InMemoryRepository) ListBySubcategory(ctx context.Context, subcategoryID int, exclude []int) ([]Candidate, error) {
	return r.collect(ctx, func(p Product) bool {
		return p.SubcategoryID != nil && *p.SubcategoryID == subcategoryID
	}, exclude, false, 0)
}

func (r *InMemoryRepository) ListBySubcategories(ctx context.Context, subcategoryIDs []int, exclude []int, limit int) ([]Candidate, error) {
	if len(subcategoryIDs) == 0 || limit <= 0 {
		return []Candidate{}, nil
	}
	want := toSet(subcategoryIDs)
	return r.collect(ctx, func(p Product) bool {
		return p.SubcategoryID != nil && want[*p.SubcategoryID]
	}, exclude, true, limit)
}

func (r *InMemoryRepository) ListPopular(ctx context.Context, exclude []int, limit int) ([]Candidate, error) {
	if limit <= 0 {
		return []Candidate{}, nil
	}
	return r.collect(ctx, func(Product) bool { return true }, exclude, true, limit)
}

func (r *InMemoryRepository) ListCandidatesByIDs(ctx context.Context, ids []int) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	byID := make(map[int]Product, len(r.storage))
	for _, p := range r.storage {
		byID[p.ID] = p
	}
	out := make([]Candidate, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p.Candidate())
		}
	}
	return out, nil
}

func (r *InMemoryRepository) collect(ctx context.Context, match func(Product) bool, exclude []int, byScore bool, limit int) ([]Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	skip := toSet(exclude)
	picked := make([]Product, 0)
	for _, p := range r.storage {
		if !skip[p.ID] && match(p) {
			picked = append(picked, p)
		}
	}
	if byScore {
		sort.SliceStable(picked, func(i, j int) bool {
			if picked[i].Score != picked[j].Score {
				return picked[i].Score > picked[j].Score
			}
			return picked[i].ID < picked[j].ID
		})
	} else {
		sort.SliceStable(picked, func(i, j int) bool { return picked[i].ID < picked[j].ID })
	}
	if limit > 0 && len(picked) > limit {
		picked = picked[:limit]
	}

	out := make([]Candidate, len(picked))
	for i, p := range picked {
		out[i] = p.Candidate()
	}
	return out, nil
}

func toSet(ids []int) map[int]bool {
	m := make(map[int]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}
