package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search and suggestion Prometheus metrics.
var (
	// SearchRequestsTotal counts engine calls by operation and outcome.
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_requests_total",
			Help:      "Total number of catalog search and suggest calls",
		},
		[]string{"op", "outcome"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "Catalog search and suggest duration in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
		[]string{"op"},
	)

	SuggestItems = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "suggest_items",
			Help:      "Number of suggestions returned per call",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	SuggestCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "suggest_cache_total",
			Help:      "Suggestion cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	CatalogRecords = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "catalog_records",
			Help:      "Records in the loaded catalog",
		},
		[]string{"source"},
	)
)

var registerSearch sync.Once

// RegisterSearchMetrics registers search metrics with the default registry.
// Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearch.Do(func() {
		prometheus.MustRegister(SearchRequestsTotal)
		prometheus.MustRegister(SearchDuration)
		prometheus.MustRegister(SuggestItems)
		prometheus.MustRegister(SuggestCacheTotal)
		prometheus.MustRegister(CatalogRecords)
	})
}
