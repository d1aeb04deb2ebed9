package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type bucket struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// TokenBucket keeps one rate.Limiter per key.
type TokenBucket struct {
	limit rate.Limit
	burst int
	idle  time.Duration
	now   func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	stopOnce sync.Once
	stopCh   chan struct{}
}

type Option func(*TokenBucket)

// WithClock replaces time.Now for refills and idle tracking.
func WithClock(now func() time.Time) Option {
	return func(tb *TokenBucket) {
		if now != nil {
			tb.now = now
		}
	}
}

// New creates a limiter and starts its cleanup loop. Call Stop to end it.
// An invalid config is rejected.
func New(cfg Config, opts ...Option) (*TokenBucket, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	interval := cfg.CleanupInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	tb := &TokenBucket{
		limit:   rate.Limit(cfg.PerMinute / 60),
		burst:   cfg.Burst,
		idle:    2 * interval,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stopCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(tb)
	}
	go tb.cleanupLoop(interval)
	return tb, nil
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (tb *TokenBucket) Stop() {
	tb.stopOnce.Do(func() { close(tb.stopCh) })
}

func (tb *TokenBucket) Allow(_ context.Context, key string) (*Result, error) {
	now := tb.now()

	tb.mu.Lock()
	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(tb.limit, tb.burst)}
		tb.buckets[key] = b
	}
	b.lastAccess = now
	allowed := b.limiter.AllowN(now, 1)
	tokens := b.limiter.TokensAt(now)
	tb.mu.Unlock()

	res := &Result{
		Allowed:   allowed,
		Limit:     tb.burst,
		Remaining: max(0, int(math.Floor(tokens))),
	}
	if tokens >= 1 {
		res.ResetAt = now
	} else {
		missing := 1 - tokens
		res.ResetAt = now.Add(time.Duration(missing / float64(tb.limit) * float64(time.Second)))
	}
	return res, nil
}

// Len returns the number of tracked keys.
func (tb *TokenBucket) Len() int {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	return len(tb.buckets)
}

// Cleanup drops buckets idle for longer than twice the cleanup interval.
func (tb *TokenBucket) Cleanup() {
	now := tb.now()
	tb.mu.Lock()
	defer tb.mu.Unlock()
	for key, b := range tb.buckets {
		if now.Sub(b.lastAccess) > tb.idle {
			delete(tb.buckets, key)
		}
	}
}

func (tb *TokenBucket) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			tb.Cleanup()
		case <-tb.stopCh:
			return
		}
	}
}
