package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordPool_CountsFailures(t *testing.T) {
	before := testutil.ToFloat64(RecommendationPoolFailures.WithLabelValues("rules"))
	RecordPool("rules", 0, errors.New("db down"))
	RecordPool("rules", 3, nil)
	after := testutil.ToFloat64(RecommendationPoolFailures.WithLabelValues("rules"))
	if after-before != 1 {
		t.Fatalf("expected one failure recorded, got %v", after-before)
	}
}

func TestRecordRuleLoad(t *testing.T) {
	before := testutil.ToFloat64(RuleLoadFailures)
	RecordRuleLoad(0, errors.New("malformed"))
	if testutil.ToFloat64(RuleLoadFailures)-before != 1 {
		t.Fatal("expected failure counter to increase")
	}
	RecordRuleLoad(12, nil)
	if got := testutil.ToFloat64(RulesLoaded); got != 12 {
		t.Fatalf("rules_loaded = %v, want 12", got)
	}
}

func TestRecordBreakerTransition(t *testing.T) {
	RecordBreakerTransition("catalog", "closed", "open", 2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("catalog")); got != 2 {
		t.Fatalf("state = %v, want 2", got)
	}
}

func TestRecordRecommendationAndAPI(t *testing.T) {
	RecordRecommendation("ok", 15*time.Millisecond)
	RecordAPIRequest("GET", "/api/v1/cart/:cartId/recommended-products", "200", 20*time.Millisecond)
	if n := testutil.CollectAndCount(RecommendationDuration); n == 0 {
		t.Fatal("expected recommendation histogram series")
	}
}
