package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search and catalog Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cocreate",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"order", "query"}, // query: "text" / "browse"
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cocreate",
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds, catalog load included",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	SearchResultsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cocreate",
			Name:      "search_results_returned",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 15, 20, 50, 100},
		},
	)

	InvalidItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cocreate",
			Name:      "catalog_invalid_items_total",
			Help:      "Catalog records skipped by validation",
		},
		[]string{"source"},
	)

	CatalogFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cocreate",
			Name:      "catalog_fallbacks_total",
			Help:      "Catalog loads served by the fallback source",
		},
		[]string{"primary"},
	)

	CatalogReloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cocreate",
			Name:      "catalog_reloads_total",
			Help:      "Catalog file reloads",
		},
		[]string{"status"}, // "ok" / "error"
	)

	CatalogSnapshotTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cocreate",
			Name:      "catalog_snapshot_total",
			Help:      "Catalog snapshot writes and reads",
		},
		[]string{"result"}, // "stored" / "hit" / "miss"
	)

	AlertMatchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cocreate",
			Name:      "alert_matches_total",
			Help:      "Listings matched by product alerts",
		},
	)
)

var registerSearchOnce sync.Once

// RegisterSearchMetrics registers search and catalog metrics. Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(
			SearchRequestsTotal,
			SearchDuration,
			SearchResultsReturned,
			InvalidItemsTotal,
			CatalogFallbacksTotal,
			CatalogReloadsTotal,
			CatalogSnapshotTotal,
			AlertMatchesTotal,
		)
	})
}
