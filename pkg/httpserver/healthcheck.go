package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/formsaas/pkg/logger"
)

// Check is a named readiness dependency such as a database ping.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

const checkTimeout = 2 * time.Second

// LivenessHandler always answers 200 "ALIVE".
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	}
}

// ReadinessHandler runs every check with the request context and answers
// 200 "READY" when all pass, otherwise 503 "NOT_READY".
func ReadinessHandler(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Nop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		for _, c := range checks {
			ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
			err := c.Fn(ctx)
			cancel()
			if err != nil {
				log.ErrorContext(r.Context(), "readiness check failed",
					slog.String("check", c.Name),
					logger.Error(err),
				)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
