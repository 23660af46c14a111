package scaleapi

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.scale.com/v1/"

// Option configures a Client.
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
	headers    map[string]string
	logger     zerolog.Logger
	tracer     trace.Tracer
	rateLimit  float64
	rateBurst  int
}

func defaultOptions() *options {
	return &options{
		baseURL:   DefaultBaseURL,
		timeout:   30 * time.Second,
		userAgent: "scaleapi-go/" + Version,
		headers:   make(map[string]string),
		logger:    zerolog.Nop(),
	}
}

// WithBaseURL overrides the API endpoint. Useful for tests and proxies.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithHTTPClient allows providing a custom HTTP client. Its Timeout is left
// untouched unless WithTimeout is also given.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
		if o.httpClient != nil {
			o.httpClient.Timeout = d
		}
	}
}

// WithHeader adds a custom header to all requests.
func WithHeader(key, value string) Option {
	return func(o *options) {
		o.headers[key] = value
	}
}

// WithUserAgent replaces the default User-Agent.
func WithUserAgent(ua string) Option {
	return func(o *options) {
		o.userAgent = ua
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithTracer sets the tracer used to record one span per request.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}

// WithRateLimit throttles outgoing requests to rps with the given burst.
// A non-positive rps disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(o *options) {
		o.rateLimit = rps
		o.rateBurst = burst
	}
}

// ListOption sets one filter or pagination parameter on a listing call.
type ListOption func(url.Values)

// WithParam sets an arbitrary parameter. Keys outside the set accepted by
// the listing call are rejected before any request is made.
func WithParam(key, value string) ListOption {
	return func(v url.Values) {
		v.Set(key, value)
	}
}

// WithStartTime limits results to items created at or after t.
func WithStartTime(t time.Time) ListOption {
	return timeParam("start_time", t)
}

// WithEndTime limits results to items created before t.
func WithEndTime(t time.Time) ListOption {
	return timeParam("end_time", t)
}

// WithStatus filters by task status.
func WithStatus(status TaskStatus) ListOption {
	return WithParam("status", string(status))
}

// WithTaskType filters by task type.
func WithTaskType(taskType TaskType) ListOption {
	return WithParam("type", string(taskType))
}

// WithProject filters by project name.
func WithProject(project string) ListOption {
	return WithParam("project", project)
}

// WithBatch filters by batch name.
func WithBatch(batch string) ListOption {
	return WithParam("batch", batch)
}

// WithLimit sets the page size.
func WithLimit(limit int) ListOption {
	return WithParam("limit", strconv.Itoa(limit))
}

// WithOffset skips the first n results.
//
// Deprecated: use WithNextToken.
func WithOffset(n int) ListOption {
	return WithParam("offset", strconv.Itoa(n))
}

// WithNextToken requests the page following the one that returned token.
func WithNextToken(token string) ListOption {
	return WithParam("next_token", token)
}

// WithCompletedBefore limits results to tasks completed before t.
func WithCompletedBefore(t time.Time) ListOption {
	return timeParam("completed_before", t)
}

// WithCompletedAfter limits results to tasks completed after t.
func WithCompletedAfter(t time.Time) ListOption {
	return timeParam("completed_after", t)
}

// WithUpdatedBefore limits results to tasks updated before t.
func WithUpdatedBefore(t time.Time) ListOption {
	return timeParam("updated_before", t)
}

// WithUpdatedAfter limits results to tasks updated after t.
func WithUpdatedAfter(t time.Time) ListOption {
	return timeParam("updated_after", t)
}

// WithCustomerReviewStatus filters by customer review outcome.
func WithCustomerReviewStatus(status ReviewStatus) ListOption {
	return WithParam("customer_review_status", string(status))
}

func timeParam(key string, t time.Time) ListOption {
	return WithParam(key, t.UTC().Format(time.RFC3339))
}

var (
	taskListParams = map[string]struct{}{
		"start_time":             {},
		"end_time":               {},
		"status":                 {},
		"type":                   {},
		"project":                {},
		"batch":                  {},
		"limit":                  {},
		"offset":                 {},
		"completed_before":       {},
		"completed_after":        {},
		"next_token":             {},
		"customer_review_status": {},
		"updated_before":         {},
		"updated_after":          {},
	}

	batchListParams = map[string]struct{}{
		"start_time": {},
		"end_time":   {},
		"status":     {},
		"project":    {},
		"batch":      {},
		"limit":      {},
		"offset":     {},
	}
)

// buildListParams applies opts and rejects any key outside allowed.
func buildListParams(method string, allowed map[string]struct{}, opts []ListOption) (url.Values, error) {
	params := url.Values{}
	for _, opt := range opts {
		opt(params)
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := allowed[key]; !ok {
			return nil, newInvalidRequestError("illegal parameter %s for %s", key, method)
		}
	}
	return params, nil
}
