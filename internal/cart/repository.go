package cart

import (
	"context"
	"sort"
	"sync"

	"github.com/wichananm65/online-supermarket/internal/product"
)

// Repository provides access to cart operations.
// quantities are stored so duplicates are allowed and incremented.
type Repository interface {
	AddToCart(userID int, productID int, qty int, updatedAt string) ([]Item, error)
	GetCart(userID int) ([]Item, error)
	ClearCart(userID int, updatedAt string) error
	LineSource
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu       sync.RWMutex
	owners   []Owner
	products map[int]product.Product
}

func NewInMemoryRepository(seed []Owner, catalog []product.Product) *InMemoryRepository {
	r := &InMemoryRepository{
		owners:   make([]Owner, 0, len(seed)),
		products: make(map[int]product.Product, len(catalog)),
	}
	for _, o := range seed {
		cp := make(map[int]int, len(o.Cart))
		for pid, q := range o.Cart {
			cp[pid] = q
		}
		o.Cart = cp
		r.owners = append(r.owners, o)
	}
	for _, p := range catalog {
		r.products[p.ID] = p
	}
	return r
}

func (r *InMemoryRepository) AddToCart(userID int, productID int, qty int, updatedAt string) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.owners {
		if o.ID != userID {
			continue
		}
		if o.Cart == nil {
			o.Cart = make(map[int]int)
		}
		o.Cart[productID] += qty
		if o.Cart[productID] <= 0 {
			delete(o.Cart, productID)
		}
		if updatedAt != "" {
			o.UpdatedAt = updatedAt
		}
		r.owners[i] = o
		return r.items(o), nil
	}
	return nil, ErrNotFound
}

func (r *InMemoryRepository) GetCart(userID int) ([]Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.owners {
		if o.ID == userID {
			return r.items(o), nil
		}
	}
	return nil, ErrNotFound
}

// ClearCart empties a user's cart.
func (r *InMemoryRepository) ClearCart(userID int, updatedAt string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.owners {
		if o.ID == userID {
			o.Cart = make(map[int]int)
			if updatedAt != "" {
				o.UpdatedAt = updatedAt
			}
			r.owners[i] = o
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Lines(ctx context.Context, cartID int) ([]LineView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.owners {
		if o.ID != cartID {
			continue
		}
		ids := sortedIDs(o.Cart)
		out := make([]LineView, 0, len(ids))
		for _, pid := range ids {
			line := LineView{ProductID: pid}
			if p, ok := r.products[pid]; ok && p.Subcategory != nil {
				line.SubcategoryLabel = *p.Subcategory
			}
			out = append(out, line)
		}
		return out, nil
	}
	return []LineView{}, nil
}

func (r *InMemoryRepository) items(o Owner) []Item {
	ids := sortedIDs(o.Cart)
	out := make([]Item, 0, len(ids))
	for _, pid := range ids {
		it := Item{ProductID: pid, Quantity: o.Cart[pid]}
		if p, ok := r.products[pid]; ok {
			it.ProductName = p.Name
			it.ProductPrice = p.Price
			it.ProductImg = p.Pic
			it.Subcategory = p.Subcategory
		}
		out = append(out, it)
	}
	return out
}

func sortedIDs(m map[int]int) []int {
	ids := make([]int, 0, len(m))
	for pid := range m {
		ids = append(ids, pid)
	}
	sort.Ints(ids)
	return ids
}
