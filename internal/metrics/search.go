package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "catsearch"

// Search and cache Prometheus metrics.
var (
	SearchCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_cache_total",
			Help:      "Search cache lookups by outcome",
		},
		[]string{"result"}, // "hit" / "miss" / "error"
	)

	SearchCacheWritesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_cache_writes_total",
			Help:      "Search cache writes by status",
		},
		[]string{"status"}, // "ok" / "error"
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds, split by cache hit",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"cached"},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchCacheTotal)
	prometheus.MustRegister(SearchCacheWritesTotal)
	prometheus.MustRegister(SearchDuration)
	searchMetricsRegistered = true
}
