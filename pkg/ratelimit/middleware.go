package ratelimit

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dmitrymomot/formsaas/pkg/logger"
)

// MiddlewareOption configures middleware behavior.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	onLimitReached func(w http.ResponseWriter, r *http.Request, result *Result)
	skipFunc       func(r *http.Request) bool
	log            *slog.Logger
}

// WithOnLimitReached sets the handler for rejected requests.
func WithOnLimitReached(fn func(w http.ResponseWriter, r *http.Request, result *Result)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.onLimitReached = fn
		}
	}
}

// WithSkipFunc sets a function to determine if rate limiting should be skipped.
func WithSkipFunc(fn func(r *http.Request) bool) MiddlewareOption {
	return func(c *middlewareConfig) { c.skipFunc = fn }
}

func WithLogger(l *slog.Logger) MiddlewareOption {
	return func(c *middlewareConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// Middleware enforces limiter per key. It fails open on limiter errors and
// empty keys. Retry-After is always at least one second.
func Middleware(limiter Limiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if keyFunc == nil {
		panic("ratelimit.Middleware: keyFunc is required")
	}
	config := &middlewareConfig{
		onLimitReached: func(w http.ResponseWriter, _ *http.Request, _ *Result) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
		},
		log: slog.Default(),
	}
	for _, opt := range opts {
		opt(config)
	}
	log := config.log.With(logger.Component("ratelimit"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.skipFunc != nil && config.skipFunc(r) {
				next.ServeHTTP(w, r)
				return
			}

			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			result, err := limiter.Allow(r.Context(), key)
			if err != nil {
				log.WarnContext(r.Context(), "rate limiter failed, allowing request", logger.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				retryAfter := int(result.RetryAfter().Seconds() + 0.999)
				w.Header().Set("Retry-After", strconv.Itoa(max(1, retryAfter)))
				log.WarnContext(r.Context(), "rate limit exceeded", slog.String("key", key), slog.String("path", r.URL.Path))
				config.onLimitReached(w, r, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
