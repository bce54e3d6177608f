package rule

import (
	"context"
	"sort"
	"strings"

	"github.com/wichananm65/online-supermarket/internal/category"
)

// MinLift is the smallest lift a rule may carry and still be used.
const MinLift = 1.0

// Rule is an association rule between subcategories: carts holding the
// antecedents tend to also hold the consequents.
type Rule struct {
	Antecedents []category.Key
	Consequents []category.Key
	Confidence  float64
	Lift        float64
}

// Store yields the usable rule set. It never fails; a broken artifact yields
// no rules.
type Store interface {
	LoadRules(ctx context.Context) []Rule
}

// Matches reports whether any antecedent is in keys.
func (r Rule) Matches(keys map[category.Key]bool) bool {
	for _, a := range r.Antecedents {
		if keys[a] {
			return true
		}
	}
	return false
}

// dedupeKey identifies a rule regardless of item order.
func (r Rule) dedupeKey() string {
	return joinSorted(r.Antecedents) + "=>" + joinSorted(r.Consequents)
}

func joinSorted(keys []category.Key) string {
	s := make([]string, len(keys))
	for i, k := range keys {
		s[i] = string(k)
	}
	sort.Strings(s)
	return strings.Join(s, ",")
}

// Usable drops rules below MinLift and duplicates, keeping the first
// occurrence of each antecedent/consequent pair.
func Usable(rules []Rule) []Rule {
	seen := make(map[string]bool, len(rules))
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Lift < MinLift {
			continue
		}
		k := r.dedupeKey()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

// StaticStore serves a fixed rule set.
type StaticStore struct {
	rules []Rule
}

func NewStaticStore(rules []Rule) *StaticStore {
	return &StaticStore{rules: Usable(rules)}
}

func (s *StaticStore) LoadRules(ctx context.Context) []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}
