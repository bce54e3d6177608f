package order

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Repository reads sales aggregates from placed orders.
type Repository interface {
	// ProductSales returns units sold per product since the given time, best
	// sellers first, at most limit rows.
	ProductSales(ctx context.Context, since time.Time, limit int) ([]Sale, error)
}

// InMemoryRepository is used by tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{orders: make([]Order, 0, len(seed))}
	r.orders = append(r.orders, seed...)
	return r
}

func (r *InMemoryRepository) ProductSales(ctx context.Context, since time.Time, limit int) ([]Sale, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	units := make(map[int]int)
	for _, o := range r.orders {
		if o.Status == StatusCancelled {
			continue
		}
		if at, ok := o.placedAt(); !ok || at.Before(since) {
			continue
		}
		for k, q := range o.Cart {
			if pid, err := strconv.Atoi(k); err == nil {
				units[pid] += q
			}
		}
	}

	out := make([]Sale, 0, len(units))
	for pid, u := range units {
		out = append(out, Sale{ProductID: pid, Units: u})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		return out[i].ProductID < out[j].ProductID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
