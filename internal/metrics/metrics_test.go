package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	h, ok := o.(prometheus.Histogram)
	require.True(t, ok)
	var m dto.Metric
	require.NoError(t, h.Write(&m))
	return m.GetHistogram().GetSampleCount()
}

func TestMetricsRegistration(t *testing.T) {
	// Client metrics
	assert.NotNil(t, ClientRequestsTotal)
	assert.NotNil(t, ClientRequestDuration)
	assert.NotNil(t, ClientErrors)
	assert.NotNil(t, TasksCreated)

	// Mock server metrics
	assert.NotNil(t, MockHTTPRequestDuration)
	assert.NotNil(t, MockHTTPRequestsTotal)
}

func TestRecordClientRequest(t *testing.T) {
	ClientRequestsTotal.Reset()
	ClientRequestDuration.Reset()

	RecordClientRequest("fetch_task", "GET", "200", 0.05)
	RecordClientRequest("fetch_task", "GET", "200", 0.10)
	RecordClientRequest("fetch_task", "GET", "404", 0.02)

	assert.Equal(t, 2.0, counterValue(t, ClientRequestsTotal.WithLabelValues("fetch_task", "GET", "200")))
	assert.Equal(t, 1.0, counterValue(t, ClientRequestsTotal.WithLabelValues("fetch_task", "GET", "404")))
	assert.Equal(t, uint64(3), histogramCount(t, ClientRequestDuration.WithLabelValues("fetch_task")))
}

func TestRecordClientError(t *testing.T) {
	ClientErrors.Reset()

	RecordClientError("list_tasks", "invalid_request")
	RecordClientError("list_tasks", "api_error")
	RecordClientError("list_tasks", "api_error")

	assert.Equal(t, 1.0, counterValue(t, ClientErrors.WithLabelValues("list_tasks", "invalid_request")))
	assert.Equal(t, 2.0, counterValue(t, ClientErrors.WithLabelValues("list_tasks", "api_error")))
}

func TestRecordTaskCreated(t *testing.T) {
	TasksCreated.Reset()

	RecordTaskCreated("imageannotation")
	RecordTaskCreated("imageannotation")
	RecordTaskCreated("comparison")

	assert.Equal(t, 2.0, counterValue(t, TasksCreated.WithLabelValues("imageannotation")))
	assert.Equal(t, 1.0, counterValue(t, TasksCreated.WithLabelValues("comparison")))
}

func TestRecordMockHTTPRequest(t *testing.T) {
	MockHTTPRequestDuration.Reset()
	MockHTTPRequestsTotal.Reset()

	RecordMockHTTPRequest("GET", "/v1/task/{id}", "200", 0.001)
	RecordMockHTTPRequest("POST", "/v1/batches", "400", 0.002)

	assert.Equal(t, 1.0, counterValue(t, MockHTTPRequestsTotal.WithLabelValues("GET", "/v1/task/{id}", "200")))
	assert.Equal(t, 1.0, counterValue(t, MockHTTPRequestsTotal.WithLabelValues("POST", "/v1/batches", "400")))
	assert.Equal(t, uint64(1), histogramCount(t, MockHTTPRequestDuration.WithLabelValues("POST", "/v1/batches", "400")))
}
