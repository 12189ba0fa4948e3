// Package metrics provides Prometheus metrics for the BinSolver client and
// the mock API server. It does not depend on gin; the HTTP middleware that
// feeds the mock API collectors lives in internal/middleware.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Client call outcomes.
const (
	OutcomeSuccess     = "success"
	OutcomeUnhealthy   = "unhealthy"
	OutcomeCircuitOpen = "circuit_open"
)

var (
	// ClientRequestsTotal counts client calls by operation and outcome.
	ClientRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "binsolver_client_requests_total",
			Help: "Total number of BinSolver client calls",
		},
		[]string{"operation", "outcome"},
	)

	// ClientRequestDuration tracks client call latency by operation.
	ClientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "binsolver_client_request_duration_seconds",
			Help:    "BinSolver client call duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	// HTTPRequestDuration tracks mock API request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "binsolver_mock_http_request_duration_seconds",
			Help:    "Mock API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total mock API requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "binsolver_mock_http_requests_total",
			Help: "Total number of mock API requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// StubPacksTotal counts pack requests answered by the mock API.
	StubPacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "binsolver_mock_packs_total",
			Help: "Total number of pack requests answered by the mock API",
		},
		[]string{"status"},
	)

	// StubUnitsTotal counts item units seen by the mock API, by placement result.
	StubUnitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "binsolver_mock_units_total",
			Help: "Item units processed by the mock API",
		},
		[]string{"result"},
	)
)

// RecordClientRequest records one client call.
func RecordClientRequest(operation, outcome string, duration time.Duration) {
	ClientRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	ClientRequestsTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordStubPack records one pack request answered by the mock API.
func RecordStubPack(status string, placed, unplaced int) {
	StubPacksTotal.WithLabelValues(status).Inc()
	StubUnitsTotal.WithLabelValues("placed").Add(float64(placed))
	StubUnitsTotal.WithLabelValues("unplaced").Add(float64(unplaced))
}
