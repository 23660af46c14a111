package scaleapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/maumercado/scaleapi-go/internal/metrics"
)

// getRequest issues a GET against endpoint and decodes a 200 body into out.
func (c *Client) getRequest(ctx context.Context, op, endpoint string, params url.Values, out any) error {
	return c.do(ctx, op, http.MethodGet, endpoint, params, nil, out)
}

// postRequest issues a POST with a JSON payload. A nil payload is sent as {}.
func (c *Client) postRequest(ctx context.Context, op, endpoint string, payload any, out any) error {
	if payload == nil {
		payload = map[string]any{}
	}
	return c.do(ctx, op, http.MethodPost, endpoint, nil, payload, out)
}

// newRequest creates a new HTTP request with auth and common headers.
func (c *Client) newRequest(ctx context.Context, method, endpoint string, params url.Values, payload any) (*http.Request, error) {
	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(payload); err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = &buf
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// do performs exactly one round trip and maps the outcome: 200 decodes into
// out, 400 becomes KindInvalidRequest, anything else KindAPI.
func (c *Client) do(ctx context.Context, op, method, endpoint string, params url.Values, payload any, out any) error {
	ctx, span := c.tracer.Start(ctx, "scaleapi."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("scaleapi.endpoint", endpoint),
		))
	defer span.End()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			span.RecordError(err)
			return fmt.Errorf("%s: rate limiter wait failed: %w", op, err)
		}
	}

	req, err := c.newRequest(ctx, method, endpoint, params, payload)
	if err != nil {
		span.RecordError(err)
		return err
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordClientRequest(op, method, "error", time.Since(start).Seconds())
		metrics.RecordClientError(op, "transport")
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		c.logger.Warn().Err(err).
			Str("operation", op).
			Str("method", method).
			Str("endpoint", endpoint).
			Msg("scale api request failed")
		return fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	metrics.RecordClientRequest(op, method, strconv.Itoa(resp.StatusCode), duration.Seconds())
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("%s: failed to read response: %w", op, err)
	}

	c.logger.Debug().
		Str("operation", op).
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", duration).
		Msg("scale api request")

	if resp.StatusCode != http.StatusOK {
		apiErr := newStatusError(resp.StatusCode, errorMessage(data))
		metrics.RecordClientError(op, apiErr.Kind.String())
		span.RecordError(apiErr)
		span.SetStatus(codes.Error, apiErr.Message)
		c.logger.Warn().
			Str("operation", op).
			Int("status", resp.StatusCode).
			Str("error", apiErr.Message).
			Msg("scale api returned an error")
		return apiErr
	}

	if out == nil {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}

// errorMessage extracts the "error" field of a JSON error body, falling back
// to the raw body text.
func errorMessage(body []byte) string {
	var payload apiErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg, ok := payload.Error.(string); ok {
			return msg
		}
	}
	return string(body)
}
