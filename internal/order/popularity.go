package order

import (
	"context"
	"time"

	"github.com/wichananm65/online-supermarket/internal/product"
)

// DefaultSalesWindow is the trailing window used when none is configured.
const DefaultSalesWindow = 30 * 24 * time.Hour

// CandidateSource turns product ids into display candidates.
type CandidateSource interface {
	ListCandidatesByIDs(ctx context.Context, ids []int) ([]product.Candidate, error)
}

// Fallback ranks products when the sales window has too few sellers.
type Fallback interface {
	Popular(ctx context.Context, exclude []int, limit int) ([]product.Candidate, error)
}

// SalesPopularity ranks products by units sold in a trailing window.
type SalesPopularity struct {
	sales    Repository
	catalog  CandidateSource
	fallback Fallback
	window   time.Duration
	now      func() time.Time
}

// NewSalesPopularity builds the ranking. fallback may be nil.
func NewSalesPopularity(sales Repository, catalog CandidateSource, fallback Fallback, window time.Duration) *SalesPopularity {
	if window <= 0 {
		window = DefaultSalesWindow
	}
	return &SalesPopularity{sales: sales, catalog: catalog, fallback: fallback, window: window, now: time.Now}
}

func (p *SalesPopularity) Popular(ctx context.Context, exclude []int, limit int) ([]product.Candidate, error) {
	if limit <= 0 {
		return []product.Candidate{}, nil
	}

	// over-fetch so excluded best sellers do not starve the result
	sales, err := p.sales.ProductSales(ctx, p.now().Add(-p.window), limit+len(exclude))
	if err != nil {
		return nil, err
	}

	skip := make(map[int]bool, len(exclude)+limit)
	for _, id := range exclude {
		skip[id] = true
	}
	ids := make([]int, 0, limit)
	for _, s := range sales {
		if len(ids) == limit {
			break
		}
		if !skip[s.ProductID] {
			ids = append(ids, s.ProductID)
		}
	}

	out := make([]product.Candidate, 0, limit)
	if len(ids) > 0 {
		found, err := p.catalog.ListCandidatesByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, c := range found {
			skip[c.ID] = true
			out = append(out, c)
		}
	}

	if len(out) >= limit || p.fallback == nil {
		return out, nil
	}
	more, err := p.fallback.Popular(ctx, keys(skip), limit-len(out))
	if err != nil {
		if len(out) == 0 {
			return nil, err
		}
		return out, nil
	}
	for _, c := range more {
		if len(out) == limit {
			break
		}
		if !skip[c.ID] {
			skip[c.ID] = true
			out = append(out, c)
		}
	}
	return out, nil
}

func keys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
