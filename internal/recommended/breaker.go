package recommended

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"

	"github.com/wichananm65/online-supermarket/internal/cart"
	"github.com/wichananm65/online-supermarket/internal/category"
	"github.com/wichananm65/online-supermarket/internal/metrics"
	"github.com/wichananm65/online-supermarket/internal/product"
)

// BreakerSettings configures the circuit breakers around the engine's
// collaborators. A breaker opens after FailureThreshold consecutive failures
// and probes again after Timeout.
type BreakerSettings struct {
	FailureThreshold uint32
	Timeout          time.Duration
}

func (s BreakerSettings) settings(name string) gobreaker.Settings {
	threshold := s.FailureThreshold
	if threshold == 0 {
		threshold = 5
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.RecordBreakerTransition(name, from.String(), to.String(), int(to))
			log.Warn().
				Str("component", "circuit_breaker").
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, context.Canceled) ||
				errors.Is(err, cart.ErrInvalidCartID)
		},
	}
}

type guardedCategories struct {
	next CategoryFinder
	cb   *gobreaker.CircuitBreaker[[]category.CategoryItem]
}

// GuardCategories wraps a CategoryFinder in a circuit breaker.
func GuardCategories(next CategoryFinder, s BreakerSettings) CategoryFinder {
	return &guardedCategories{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[[]category.CategoryItem](s.settings("categories")),
	}
}

func (g *guardedCategories) FindByNames(ctx context.Context, names []string) ([]category.CategoryItem, error) {
	return g.cb.Execute(func() ([]category.CategoryItem, error) {
		return g.next.FindByNames(ctx, names)
	})
}

type guardedCatalog struct {
	next Catalog
	cb   *gobreaker.CircuitBreaker[[]product.Candidate]
}

// GuardCatalog wraps a Catalog in a circuit breaker shared by both lookups.
func GuardCatalog(next Catalog, s BreakerSettings) Catalog {
	return &guardedCatalog{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[[]product.Candidate](s.settings("catalog")),
	}
}

func (g *guardedCatalog) ListBySubcategory(ctx context.Context, subcategoryID int, exclude []int) ([]product.Candidate, error) {
	return g.cb.Execute(func() ([]product.Candidate, error) {
		return g.next.ListBySubcategory(ctx, subcategoryID, exclude)
	})
}

func (g *guardedCatalog) ListBySubcategories(ctx context.Context, subcategoryIDs []int, exclude []int, limit int) ([]product.Candidate, error) {
	return g.cb.Execute(func() ([]product.Candidate, error) {
		return g.next.ListBySubcategories(ctx, subcategoryIDs, exclude, limit)
	})
}

type guardedPopularity struct {
	next Popularity
	cb   *gobreaker.CircuitBreaker[[]product.Candidate]
}

// GuardPopularity wraps a Popularity source in a circuit breaker.
func GuardPopularity(next Popularity, s BreakerSettings) Popularity {
	return &guardedPopularity{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[[]product.Candidate](s.settings("popularity")),
	}
}

func (g *guardedPopularity) Popular(ctx context.Context, exclude []int, limit int) ([]product.Candidate, error) {
	return g.cb.Execute(func() ([]product.Candidate, error) {
		return g.next.Popular(ctx, exclude, limit)
	})
}

type guardedCarts struct {
	next CartReader
	cb   *gobreaker.CircuitBreaker[[]cart.LineView]
}

// GuardCarts wraps a CartReader in a circuit breaker. An invalid cart id
// does not count as a failure.
func GuardCarts(next CartReader, s BreakerSettings) CartReader {
	return &guardedCarts{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[[]cart.LineView](s.settings("carts")),
	}
}

func (g *guardedCarts) Lines(ctx context.Context, cartID int) ([]cart.LineView, error) {
	return g.cb.Execute(func() ([]cart.LineView, error) {
		return g.next.Lines(ctx, cartID)
	})
}
