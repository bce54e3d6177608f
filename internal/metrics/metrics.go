package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation Metrics
	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"}, // "ok", "empty", "cart_error", "invalid_cart"
	)

	RecommendationPoolSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_pool_size",
			Help:    "Number of candidates contributed by each pool",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
		[]string{"pool"},
	)

	RecommendationPoolFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_pool_failures_total",
			Help: "Total number of candidate pool lookups that failed and degraded to empty",
		},
		[]string{"pool"},
	)

	// Rule Artifact Metrics
	RuleLoadFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rule_load_failures_total",
			Help: "Total number of rule artifact loads that fell back to an empty rule set",
		},
	)

	RulesLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rules_loaded",
			Help: "Number of usable rules after dedupe and lift filtering on the last load",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// API Metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// RecordRecommendation records one recommendation call.
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendationDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func RecordPool(pool string, size int, err error) {
	if err != nil {
		RecommendationPoolFailures.WithLabelValues(pool).Inc()
	}
	RecommendationPoolSize.WithLabelValues(pool).Observe(float64(size))
}

// RecordRuleLoad records the outcome of reading the rule artifact.
func RecordRuleLoad(usable int, err error) {
	if err != nil {
		RuleLoadFailures.Inc()
	}
	RulesLoaded.Set(float64(usable))
}

func RecordBreakerTransition(name, from, to string, state int) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}
