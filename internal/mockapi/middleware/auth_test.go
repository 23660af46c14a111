package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(GetAPIKey(r.Context())))
	})
}

func TestNewAuthConfig(t *testing.T) {
	cfg := NewAuthConfig([]string{"live_a", "", "live_b"})
	assert.True(t, cfg.Enabled)
	assert.Len(t, cfg.APIKeys, 2)

	cfg = NewAuthConfig(nil)
	assert.False(t, cfg.Enabled)
}

func TestAuth_Disabled(t *testing.T) {
	handler := Auth(NewAuthConfig(nil))(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_ValidAPIKey(t *testing.T) {
	handler := Auth(NewAuthConfig([]string{"live_valid"}))(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.SetBasicAuth("live_valid", "")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "live_valid", w.Body.String())
}

func TestAuth_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(*http.Request)
		message string
	}{
		{
			name:    "missing credentials",
			prepare: func(r *http.Request) {},
			message: "Please provide your API key as the basic auth username",
		},
		{
			name:    "bearer token",
			prepare: func(r *http.Request) { r.Header.Set("Authorization", "Bearer live_valid") },
			message: "Please provide your API key as the basic auth username",
		},
		{
			name:    "empty username",
			prepare: func(r *http.Request) { r.SetBasicAuth("", "live_valid") },
			message: "Please provide your API key as the basic auth username",
		},
		{
			name:    "unknown key",
			prepare: func(r *http.Request) { r.SetBasicAuth("live_other", "") },
			message: "Invalid API key",
		},
	}

	handler := Auth(NewAuthConfig([]string{"live_valid"}))(okHandler())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(req)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, float64(http.StatusUnauthorized), body["status_code"])
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

func TestGetAPIKey_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", GetAPIKey(req.Context()))
}
