package subscription

import (
	"context"
	"time"

	"github.com/dmitrymomot/formsaas/pkg/cache"
)

// CacheConfig sizes the profile cache.
type CacheConfig struct {
	TTL  time.Duration `env:"SUBSCRIPTION_CACHE_TTL" envDefault:"30s"`
	Size int           `env:"SUBSCRIPTION_CACHE_SIZE" envDefault:"10000"`
}

// Entry is a cached lookup: either a profile or a confirmed missing row.
// Store failures are never cached.
type Entry struct {
	Profile *Profile `json:"profile,omitempty"`
	Missing bool     `json:"missing,omitempty"`
}

// Cache stores lookups by user id. Get returns ok=false on a miss.
type Cache interface {
	Get(ctx context.Context, userID string) (Entry, bool, error)
	Set(ctx context.Context, userID string, e Entry) error
	Delete(ctx context.Context, userID string) error
}

// MemoryCache is an in-process LRU cache with a time to live.
type MemoryCache struct {
	lru *cache.LRU[string, Entry]
}

func NewMemoryCache(cfg CacheConfig, opts ...cache.Option) *MemoryCache {
	size := cfg.Size
	if size <= 0 {
		size = 10000
	}
	return &MemoryCache{lru: cache.NewLRU[string, Entry](size, cfg.TTL, opts...)}
}

func (c *MemoryCache) Get(_ context.Context, userID string) (Entry, bool, error) {
	e, ok := c.lru.Get(userID)
	return e, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, userID string, e Entry) error {
	c.lru.Put(userID, e)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, userID string) error {
	c.lru.Remove(userID)
	return nil
}
