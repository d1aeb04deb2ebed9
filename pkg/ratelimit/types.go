package ratelimit

import (
	"context"
	"time"
)

// Result contains the result of a rate limit check.
type Result struct {
	Allowed bool
	// Limit is the bucket capacity.
	Limit int
	// Remaining is the number of whole tokens left after this check.
	Remaining int
	// ResetAt is when the next token becomes available.
	ResetAt time.Time
}

// RetryAfter returns how long to wait before the next request is allowed.
// Returns 0 if the current request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Limiter is a keyed rate limiter.
type Limiter interface {
	// Allow consumes one token for key if available.
	Allow(ctx context.Context, key string) (*Result, error)
}
