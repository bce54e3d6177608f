package recommended

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/wichananm65/online-supermarket/internal/cart"
	"github.com/wichananm65/online-supermarket/internal/category"
	"github.com/wichananm65/online-supermarket/internal/metrics"
	"github.com/wichananm65/online-supermarket/internal/product"
	"github.com/wichananm65/online-supermarket/internal/rule"
)

// DefaultTarget is the number of products a recommendation aims for.
const DefaultTarget = 20

const (
	poolSameCategory = "same_category"
	poolRules        = "rules"
	poolPopularity   = "popularity"
)

// CategoryFinder resolves display names to catalog categories, ignoring case.
type CategoryFinder interface {
	FindByNames(ctx context.Context, names []string) ([]category.CategoryItem, error)
}

// Catalog lists products of subcategories, skipping the ids in exclude.
type Catalog interface {
	ListBySubcategory(ctx context.Context, subcategoryID int, exclude []int) ([]product.Candidate, error)
	ListBySubcategories(ctx context.Context, subcategoryIDs []int, exclude []int, limit int) ([]product.Candidate, error)
}

// Popularity ranks products for the fallback pool, best first.
type Popularity interface {
	Popular(ctx context.Context, exclude []int, limit int) ([]product.Candidate, error)
}

// CartReader lists the lines of a cart.
type CartReader interface {
	Lines(ctx context.Context, cartID int) ([]cart.LineView, error)
}

// Engine builds basket recommendations from three pools in priority order:
// products sharing a subcategory with the cart, products of subcategories
// implied by association rules, and popular products.
type Engine struct {
	carts      CartReader
	categories CategoryFinder
	catalog    Catalog
	popularity Popularity
	rules      rule.Store
	aliases    *category.AliasTable
	target     int
	logger     zerolog.Logger
}

// Option customises an Engine built by NewEngine.
type Option func(*Engine)

// WithAliases replaces the default alias table. A nil table is ignored.
func WithAliases(t *category.AliasTable) Option {
	return func(e *Engine) {
		if t != nil {
			e.aliases = t
		}
	}
}

// WithTarget sets the default result size used when Recommend gets target <= 0.
func WithTarget(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.target = n
		}
	}
}

// WithLogger sets the logger used for pool and rule warnings.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine builds an Engine over its collaborators with the default alias
// table and a target of DefaultTarget unless opts say otherwise.
func NewEngine(carts CartReader, categories CategoryFinder, catalog Catalog, popularity Popularity, rules rule.Store, opts ...Option) *Engine {
	e := &Engine{
		carts:      carts,
		categories: categories,
		catalog:    catalog,
		popularity: popularity,
		rules:      rules,
		aliases:    category.DefaultAliasTable(),
		target:     DefaultTarget,
		logger:     log.With().Str("component", "recommendation_engine").Logger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend returns at most target products for the cart, never one already
// in it and never the same product twice. A target <= 0 uses the engine
// default. Only cart.ErrInvalidCartID is returned as an error.
func (e *Engine) Recommend(ctx context.Context, cartID int, target int) (Result, error) {
	start := time.Now()
	if target <= 0 {
		target = e.target
	}
	if cartID <= 0 {
		metrics.RecordRecommendation("invalid_cart", time.Since(start))
		return Result{}, cart.ErrInvalidCartID
	}
	logger := e.logger.With().Int("cart_id", cartID).Logger()

	var (
		rules []rule.Rule
		lines []cart.LineView
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rules = e.rules.LoadRules(gctx)
		return nil
	})
	g.Go(func() error {
		l, err := e.carts.Lines(gctx, cartID)
		lines = l
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, cart.ErrInvalidCartID) {
			metrics.RecordRecommendation("invalid_cart", time.Since(start))
			return Result{}, err
		}
		logger.Error().Err(err).Msg("error reading cart")
		metrics.RecordRecommendation("cart_error", time.Since(start))
		return Result{Success: false, Message: MsgError, Products: []product.Candidate{}}, nil
	}
	if len(rules) == 0 {
		logger.Warn().Msg("no association rules found, relying on same-category recommendations")
	}

	keys := cart.KeysOf(lines, e.aliases)
	picked := newPicker(cart.IDsOf(lines), target)

	same, err := e.sameCategoryPool(ctx, lines, keys, picked.excluded())
	e.recordPool(logger, poolSameCategory, picked.add(same, -1), err)

	if picked.remaining() > 0 && len(rules) > 0 {
		ruled, err := e.rulePool(ctx, keys, rules, picked.excluded(), picked.remaining())
		e.recordPool(logger, poolRules, picked.add(ruled, picked.remaining()), err)
	}

	if picked.remaining() > 0 {
		popular, err := e.popularity.Popular(ctx, picked.excluded(), picked.remaining())
		e.recordPool(logger, poolPopularity, picked.add(popular, picked.remaining()), err)
	}

	products := picked.result()
	if len(products) == 0 {
		metrics.RecordRecommendation("empty", time.Since(start))
		return Result{Success: false, Message: MsgNotFound, Products: []product.Candidate{}}, nil
	}
	metrics.RecordRecommendation("ok", time.Since(start))
	return Result{Success: true, Message: MsgRetrieved, Products: products}, nil
}

// sameCategoryPool gathers every product of the cart's own subcategories.
func (e *Engine) sameCategoryPool(ctx context.Context, lines []cart.LineView, keys []category.Key, exclude []int) ([]product.Candidate, error) {
	if len(keys) == 0 {
		return nil, nil
	}

	// raw labels the alias table does not list still name their own category
	raw := make(map[category.Key][]string, len(keys))
	for _, l := range lines {
		if l.SubcategoryLabel == "" {
			continue
		}
		k := e.aliases.Canonical(l.SubcategoryLabel)
		raw[k] = append(raw[k], l.SubcategoryLabel)
	}
	names := newNameList()
	for _, k := range keys {
		names.add(e.aliases.Variants(k)...)
		names.add(raw[k]...)
	}

	cats, err := e.categories.FindByNames(ctx, names.list)
	if err != nil {
		return nil, err
	}

	out := make([]product.Candidate, 0)
	for _, id := range categoryIDs(cats) {
		items, err := e.catalog.ListBySubcategory(ctx, id, exclude)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	return out, nil
}

// rulePool gathers products of subcategories that rules associate with the
// cart, skipping subcategories the cart already holds.
func (e *Engine) rulePool(ctx context.Context, keys []category.Key, rules []rule.Rule, exclude []int, limit int) ([]product.Candidate, error) {
	inCart := make(map[category.Key]bool, len(keys))
	for _, k := range keys {
		inCart[k] = true
	}

	seen := make(map[category.Key]bool)
	consequents := make([]category.Key, 0)
	for _, r := range rules {
		if !r.Matches(inCart) {
			continue
		}
		for _, c := range r.Consequents {
			if inCart[c] || seen[c] {
				continue
			}
			seen[c] = true
			consequents = append(consequents, c)
		}
	}
	if len(consequents) == 0 {
		return nil, nil
	}

	names := newNameList()
	for _, c := range consequents {
		names.add(e.aliases.Variants(c)...)
	}
	cats, err := e.categories.FindByNames(ctx, names.list)
	if err != nil {
		return nil, err
	}
	ids := categoryIDs(cats)
	if len(ids) == 0 {
		return nil, nil
	}
	return e.catalog.ListBySubcategories(ctx, ids, exclude, limit)
}

func (e *Engine) recordPool(logger zerolog.Logger, pool string, added int, err error) {
	if err != nil {
		logger.Warn().Err(err).Str("pool", pool).Msg("candidate pool lookup failed, continuing without it")
		added = 0
	}
	metrics.RecordPool(pool, added, err)
}

func categoryIDs(cats []category.CategoryItem) []int {
	seen := make(map[int]bool, len(cats))
	out := make([]int, 0, len(cats))
	for _, c := range cats {
		if seen[c.CategoryID] {
			continue
		}
		seen[c.CategoryID] = true
		out = append(out, c.CategoryID)
	}
	return out
}

// nameList keeps display names in first-seen order, ignoring case repeats.
type nameList struct {
	seen map[string]bool
	list []string
}

func newNameList() *nameList {
	return &nameList{seen: make(map[string]bool)}
}

func (n *nameList) add(names ...string) {
	for _, name := range names {
		k := strings.ToLower(strings.TrimSpace(name))
		if k == "" || n.seen[k] {
			continue
		}
		n.seen[k] = true
		n.list = append(n.list, name)
	}
}

// picker accumulates the result. Its exclusion set starts as the cart and
// grows with every accepted product.
type picker struct {
	exclude map[int]bool
	cartIDs []int
	out     []product.Candidate
	target  int
}

func newPicker(cartIDs []int, target int) *picker {
	p := &picker{exclude: make(map[int]bool, len(cartIDs)+target), cartIDs: cartIDs, target: target}
	for _, id := range cartIDs {
		p.exclude[id] = true
	}
	return p
}

// add appends unseen candidates, at most limit of them when limit >= 0, and
// returns how many were taken.
func (p *picker) add(cands []product.Candidate, limit int) int {
	taken := 0
	for _, c := range cands {
		if limit >= 0 && taken == limit {
			break
		}
		if p.exclude[c.ID] {
			continue
		}
		p.exclude[c.ID] = true
		if c.Images == nil {
			c.Images = []string{}
		}
		p.out = append(p.out, c)
		taken++
	}
	return taken
}

func (p *picker) excluded() []int {
	out := make([]int, 0, len(p.cartIDs)+len(p.out))
	out = append(out, p.cartIDs...)
	for _, c := range p.out {
		out = append(out, c.ID)
	}
	return out
}

func (p *picker) remaining() int {
	return p.target - len(p.out)
}

func (p *picker) result() []product.Candidate {
	if len(p.out) > p.target {
		return p.out[:p.target]
	}
	return p.out
}
