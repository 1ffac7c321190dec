package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestTotal counts HTTP requests by method, route pattern and status.
	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sift_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	// RequestDuration is the latency of HTTP requests.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sift_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	// OperationsTotal counts string operations (create, fetch, filter, query, ...)
	// by outcome: "ok" or the error code.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sift_operations_total",
			Help: "Total number of string operations",
		},
		[]string{"operation", "status"},
	)
)

// RecordOperation increments OperationsTotal for op with outcome status.
func RecordOperation(op, status string) {
	OperationsTotal.WithLabelValues(op, status).Inc()
}
