package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tiermatch",
			Name:      "search_requests_total",
			Help:      "Total number of search calls",
		},
		[]string{"kind", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tiermatch",
			Name:      "search_duration_seconds",
			Help:      "Search call duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"kind"},
	)

	SearchResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tiermatch",
			Name:      "search_results",
			Help:      "Number of results returned per search call",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 1000},
		},
		[]string{"kind"},
	)

	ProjectionFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tiermatch",
			Name:      "projection_failures_total",
			Help:      "Entities skipped because their searchable text could not be built",
		},
		[]string{"kind"},
	)
)

// Register registers the search metrics on reg. Registering again on the
// same registerer is a no-op.
func Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		SearchRequestsTotal, SearchDuration, SearchResults, ProjectionFailuresTotal,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) && are.ExistingCollector == c {
				continue
			}
			return fmt.Errorf("register search metrics: %w", err)
		}
	}
	return nil
}

// SearchRecorder reports search telemetry to the package collectors.
type SearchRecorder struct{}

// ObserveSearch records one finished search call.
func (SearchRecorder) ObserveSearch(kind, status string, results int, duration time.Duration) {
	SearchRequestsTotal.WithLabelValues(kind, status).Inc()
	SearchDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if status == "ok" { // matches search.StatusOK
		SearchResults.WithLabelValues(kind).Observe(float64(results))
	}
}

// ProjectionFailed records one skipped entity.
func (SearchRecorder) ProjectionFailed(kind string) {
	ProjectionFailuresTotal.WithLabelValues(kind).Inc()
}
