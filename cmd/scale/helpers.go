package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maumercado/scaleapi-go/internal/config"
	"github.com/maumercado/scaleapi-go/internal/logger"
	"github.com/maumercado/scaleapi-go/pkg/scaleapi"
)

var errNoAPIKey = errors.New("no API key configured: set api.key in config.yaml or SCALE_API_KEY")

// Exit codes
const (
	ExitSuccess        = 0
	ExitGeneralError   = 1
	ExitInvalidRequest = 2
	ExitAPIError       = 3
)

// exitCode maps an error to the process exit code
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case scaleapi.IsInvalidRequest(err):
		return ExitInvalidRequest
	case scaleapi.IsAPIError(err):
		return ExitAPIError
	default:
		return ExitGeneralError
	}
}

// newClient builds an SDK client from the resolved config. Every invocation
// gets its own request id so server logs can be correlated with a run.
func (c *cli) newClient() (*scaleapi.Client, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return clientFromConfig(cfg)
}

func clientFromConfig(cfg *config.Config) (*scaleapi.Client, error) {
	runID := uuid.NewString()
	opts := append(cfg.ClientOptions(),
		scaleapi.WithHeader("X-Request-ID", runID),
		scaleapi.WithLogger(logger.WithRequestID(runID)),
	)
	client, err := scaleapi.NewClient(cfg.API.Key, opts...)
	if errors.Is(err, scaleapi.ErrMissingAPIKey) {
		return nil, errNoAPIKey
	}
	return client, err
}

// parseFields merges a JSON object given with --data (or @file) with
// key=value pairs given with --field. Pairs win over the JSON body.
func parseFields(data string, pairs []string) (scaleapi.Fields, error) {
	fields := scaleapi.Fields{}

	if data != "" {
		raw := []byte(data)
		if strings.HasPrefix(data, "@") {
			b, err := os.ReadFile(strings.TrimPrefix(data, "@"))
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", data, err)
			}
			raw = b
		}
		doc, err := scaleapi.ParseDocument(raw)
		if err != nil {
			return nil, fmt.Errorf("--data must be a JSON object: %w", err)
		}
		for k, v := range doc {
			fields[k] = v
		}
	}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid field %q: expected key=value", pair)
		}
		fields[key] = value
	}
	return fields, nil
}

// parseTime accepts RFC 3339 timestamps or plain dates.
func parseTime(flag, value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --%s %q: expected RFC 3339 or YYYY-MM-DD", flag, value)
}
