// Package metrics defines prometheus collectors for the search engine.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	searchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "lafactoria",
			Subsystem: "search",
			Name:      "duration_seconds",
			Help:      "Search execution duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	searchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lafactoria",
			Subsystem: "search",
			Name:      "queries_total",
			Help:      "Total number of executed searches",
		},
		[]string{"outcome"}, // ok, empty, error
	)

	indexOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lafactoria",
			Subsystem: "index",
			Name:      "operations_total",
			Help:      "Total number of index mutations",
		},
		[]string{"op", "outcome"}, // op: index, update, delete; outcome: ok, error
	)

	suggestCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lafactoria",
			Subsystem: "suggest",
			Name:      "cache_total",
			Help:      "Suggestion cache lookups",
		},
		[]string{"result"}, // hit, miss
	)
)

func init() {
	prometheus.MustRegister(searchDuration)
	prometheus.MustRegister(searchesTotal)
	prometheus.MustRegister(indexOpsTotal)
	prometheus.MustRegister(suggestCacheTotal)
}

// ObserveSearch records one search execution.
func ObserveSearch(seconds float64, outcome string) {
	searchDuration.Observe(seconds)
	searchesTotal.WithLabelValues(outcome).Inc()
}

// IncIndexOp records one index mutation.
func IncIndexOp(op, outcome string) {
	indexOpsTotal.WithLabelValues(op, outcome).Inc()
}

// SuggestCache returns the suggestion cache counter vec for injection.
func SuggestCache() *prometheus.CounterVec { return suggestCacheTotal }
