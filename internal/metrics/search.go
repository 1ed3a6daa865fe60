package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lookup"

// Search Prometheus metrics.
var (
	SearchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_total",
			Help:      "Total number of search calls by outcome",
		},
		[]string{"outcome"}, // matched / empty / invalid / canceled
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of records returned per completed search",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
		},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Search duration including the artificial delay",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 1.5, 2, 5},
		},
		[]string{"outcome"},
	)
)

// RegisterSearchMetrics registers search metrics with the default registry.
func RegisterSearchMetrics() {
	prometheus.MustRegister(SearchTotal, SearchResults, SearchDuration)
}

// SearchObserver feeds search outcomes into the search metrics.
type SearchObserver struct{}

// ObserveSearch records one search call.
func (SearchObserver) ObserveSearch(outcome string, results int, elapsed time.Duration) {
	SearchTotal.WithLabelValues(outcome).Inc()
	SearchDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	if outcome == "matched" || outcome == "empty" {
		SearchResults.Observe(float64(results))
	}
}
