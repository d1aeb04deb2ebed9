// Package ratelimit provides per-key token bucket rate limiting for HTTP
// handlers, built on golang.org/x/time/rate.
//
// Each key (usually the client IP) gets its own bucket. Idle buckets are
// dropped by a background cleanup loop, so memory stays bounded by the number
// of active clients. The middleware fails open: requests without a key pass.
//
//	limiter, err := ratelimit.New(ratelimit.Config{PerMinute: 10, Burst: 5})
//	defer limiter.Stop()
//	r.With(ratelimit.Middleware(limiter, ratelimit.ClientIP)).Post("/verificar-assinante", h)
package ratelimit
