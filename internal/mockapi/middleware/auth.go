package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
)

type contextKey string

const (
	APIKeyContextKey contextKey = "api_key"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	Enabled bool
	APIKeys map[string]bool
}

// NewAuthConfig enables authentication for the given keys. An empty key list
// disables it.
func NewAuthConfig(keys []string) *AuthConfig {
	cfg := &AuthConfig{APIKeys: make(map[string]bool, len(keys))}
	for _, k := range keys {
		if k != "" {
			cfg.APIKeys[k] = true
		}
	}
	cfg.Enabled = len(cfg.APIKeys) > 0
	return cfg
}

// Auth returns a middleware that checks HTTP Basic credentials. The API key
// is the username and the password is ignored.
func Auth(cfg *AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			apiKey, _, ok := r.BasicAuth()
			if !ok || apiKey == "" {
				w.Header().Set("WWW-Authenticate", `Basic realm="scale"`)
				writeError(w, http.StatusUnauthorized, "Please provide your API key as the basic auth username")
				return
			}

			if !cfg.valid(apiKey) {
				writeError(w, http.StatusUnauthorized, "Invalid API key")
				return
			}

			ctx := context.WithValue(r.Context(), APIKeyContextKey, apiKey)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (cfg *AuthConfig) valid(apiKey string) bool {
	for k := range cfg.APIKeys {
		if subtle.ConstantTimeCompare([]byte(k), []byte(apiKey)) == 1 {
			return true
		}
	}
	return false
}

// GetAPIKey retrieves the authenticated API key from context
func GetAPIKey(ctx context.Context) string {
	key, _ := ctx.Value(APIKeyContextKey).(string)
	return key
}
