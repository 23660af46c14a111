package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Client metrics
	ClientRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scaleapi_client_requests_total",
			Help: "Total number of Scale API requests issued by the client",
		},
		[]string{"operation", "method", "status"},
	)

	ClientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scaleapi_client_request_duration_seconds",
			Help:    "Scale API request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		[]string{"operation"},
	)

	ClientErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scaleapi_client_errors_total",
			Help: "Total number of failed Scale API calls by error kind",
		},
		[]string{"operation", "kind"},
	)

	TasksCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scaleapi_tasks_created_total",
			Help: "Total number of tasks created through the client",
		},
		[]string{"type"},
	)

	// Mock server HTTP metrics
	MockHTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scaleapi_mock_http_request_duration_seconds",
			Help:    "Mock API HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	MockHTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scaleapi_mock_http_requests_total",
			Help: "Total number of HTTP requests served by the mock API",
		},
		[]string{"method", "path", "status"},
	)
)

// RecordClientRequest records a completed round trip
func RecordClientRequest(operation, method, status string, duration float64) {
	ClientRequestsTotal.WithLabelValues(operation, method, status).Inc()
	ClientRequestDuration.WithLabelValues(operation).Observe(duration)
}

// RecordClientError records a failed call
func RecordClientError(operation, kind string) {
	ClientErrors.WithLabelValues(operation, kind).Inc()
}

// RecordTaskCreated records a successful task creation
func RecordTaskCreated(taskType string) {
	TasksCreated.WithLabelValues(taskType).Inc()
}

// RecordMockHTTPRequest records a request served by the mock API
func RecordMockHTTPRequest(method, path, status string, duration float64) {
	MockHTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration)
	MockHTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
}
