// Package httpapi exposes the demo lyra server over HTTP: document
// insert/delete, search, and the operational endpoints (health, readiness,
// metrics). It is a thin transport layer over lyra.Engine — none of the
// engine's semantics live here.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/DanieleFedeli/lyra/internal/auth/apikey"
	"github.com/DanieleFedeli/lyra/internal/auth/ratelimit"
	"github.com/DanieleFedeli/lyra/pkg/resilience"
)

type contextKey string

const keyInfoContextKey contextKey = "api_key_info"

// Auth returns middleware that validates API keys from the request.
// Keys may be provided via Authorization: Bearer <key>, X-API-Key header,
// or the api_key query parameter. Health, readiness, and metrics endpoints
// are exempt.
func Auth(validator *apikey.Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			raw := extractAPIKey(r)
			if raw == "" {
				writeError(w, http.StatusUnauthorized, "missing api key")
				return
			}

			info, err := validator.Validate(raw)
			if err != nil {
				switch err {
				case apikey.ErrInvalidKey:
					writeError(w, http.StatusUnauthorized, "invalid api key")
				case apikey.ErrExpiredKey:
					writeError(w, http.StatusUnauthorized, "expired api key")
				default:
					writeError(w, http.StatusInternalServerError, "authentication error")
				}
				return
			}

			ctx := context.WithValue(r.Context(), keyInfoContextKey, keyContext{raw: raw, info: info})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimit returns middleware that enforces the per-key rate limit recorded
// on the KeyInfo that Auth placed in the request context. Requests without
// key info pass through — Auth already rejected those that needed a key.
func RateLimit(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isExempt(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			kc := keyInfoFromContext(r.Context())
			if kc == nil {
				next.ServeHTTP(w, r)
				return
			}

			if !limiter.Allow(kc.raw, kc.info.RateLimit) {
				w.Header().Set("Retry-After", "60")
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Timeout returns middleware that bounds request handling with
// resilience.WithTimeout — the same deadline-bound-fn primitive
// internal/querycache wraps Redis calls with, applied here to an entire
// handler chain instead of a single cache call. A handler that doesn't
// finish in time gets a 504; a response already in flight is left alone so
// a slow-but-completing write is never followed by a second write.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tw := &timeoutWriter{ResponseWriter: w}
			err := resilience.WithTimeout(r.Context(), timeout, "http request", func(ctx context.Context) error {
				next.ServeHTTP(tw, r.WithContext(ctx))
				return nil
			})
			if err != nil && !tw.written {
				slog.Warn("request timed out", "method", r.Method, "path", r.URL.Path, "timeout", timeout)
				writeError(w, http.StatusGatewayTimeout, "request timeout")
			}
		})
	}
}

type timeoutWriter struct {
	http.ResponseWriter
	written bool
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.written = true
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.written = true
	return tw.ResponseWriter.Write(b)
}

type keyContext struct {
	raw  string
	info *apikey.KeyInfo
}

func keyInfoFromContext(ctx context.Context) *keyContext {
	kc, _ := ctx.Value(keyInfoContextKey).(keyContext)
	if kc.info == nil {
		return nil
	}
	return &kc
}

func isExempt(path string) bool {
	return strings.HasPrefix(path, "/healthz") ||
		strings.HasPrefix(path, "/readyz") ||
		strings.HasPrefix(path, "/metrics")
}

func extractAPIKey(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	return r.URL.Query().Get("api_key")
}
