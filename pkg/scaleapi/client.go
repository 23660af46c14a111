package scaleapi

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/time/rate"
)

// Version is the SDK version reported in the User-Agent header.
const Version = "1.0.0"

// ErrMissingAPIKey is returned by NewClient when no credential is given.
var ErrMissingAPIKey = errors.New("scaleapi: api key is required")

// Client issues authenticated requests against the Scale API. A Client is
// immutable once built and may be shared between goroutines.
type Client struct {
	apiKey    string
	baseURL   string
	http      *http.Client
	userAgent string
	headers   map[string]string
	logger    zerolog.Logger
	tracer    trace.Tracer
	limiter   *rate.Limiter
}

// NewClient creates a new Scale API client authenticated with apiKey.
//
// Example:
//
//	client, err := scaleapi.NewClient(os.Getenv("SCALE_API_KEY"),
//	    scaleapi.WithTimeout(10*time.Second),
//	)
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	baseURL := o.baseURL
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base URL %q: scheme must be http or https", o.baseURL)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	tracer := o.tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("scaleapi")
	}

	var limiter *rate.Limiter
	if o.rateLimit > 0 {
		burst := o.rateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(o.rateLimit), burst)
	}

	headers := make(map[string]string, len(o.headers))
	for k, v := range o.headers {
		headers[k] = v
	}

	return &Client{
		apiKey:    apiKey,
		baseURL:   baseURL,
		http:      httpClient,
		userAgent: o.userAgent,
		headers:   headers,
		logger:    o.logger,
		tracer:    tracer,
		limiter:   limiter,
	}, nil
}

// BaseURL returns the endpoint prefix every request is sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// pathJoin escapes each segment and joins them with slashes.
func pathJoin(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return strings.Join(escaped, "/")
}
