package middleware

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/maumercado/scaleapi-go/internal/logger"
)

// ClientRateLimiter maintains one token bucket per API key
type ClientRateLimiter struct {
	limiters map[string]*clientLimiter
	rps      float64
	burst    int
	idleTTL  time.Duration
	mu       sync.Mutex
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientRateLimiter creates a per-client rate limiter
func NewClientRateLimiter(rps float64, burst int) *ClientRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &ClientRateLimiter{
		limiters: make(map[string]*clientLimiter),
		rps:      rps,
		burst:    burst,
		idleTTL:  5 * time.Minute,
	}
}

// Allow reports whether clientID may make a request now. Buckets idle for
// longer than the TTL are dropped.
func (crl *ClientRateLimiter) Allow(clientID string) bool {
	crl.mu.Lock()
	defer crl.mu.Unlock()

	now := time.Now()
	for id, cl := range crl.limiters {
		if now.Sub(cl.lastSeen) > crl.idleTTL {
			delete(crl.limiters, id)
		}
	}

	cl, ok := crl.limiters[clientID]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rate.Limit(crl.rps), crl.burst)}
		crl.limiters[clientID] = cl
	}
	cl.lastSeen = now
	return cl.limiter.AllowN(now, 1)
}

// ClientRateLimit returns a middleware that enforces per-client rate limiting.
// Clients are keyed by API key, falling back to the remote address.
func ClientRateLimit(rps float64, burst int) func(next http.Handler) http.Handler {
	limiter := NewClientRateLimiter(rps, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID := GetAPIKey(r.Context())
			if clientID == "" {
				clientID = r.RemoteAddr
			}

			if !limiter.Allow(clientID) {
				logger.Warn().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Msg("client rate limit exceeded")

				w.Header().Set("Retry-After", "1")
				writeError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
