package subscription

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrymomot/formsaas/pkg/redis"
)

const redisKeyPrefix = "subscription:profile:"

// RedisCache shares cached lookups between instances.
type RedisCache struct {
	store *redis.Storage
	ttl   time.Duration
}

func NewRedisCache(store *redis.Storage, ttl time.Duration) *RedisCache {
	return &RedisCache{store: store, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, userID string) (Entry, bool, error) {
	raw, err := c.store.Get(ctx, redisKeyPrefix+userID)
	if err != nil || raw == nil {
		return Entry{}, false, err
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		// drop an entry written by an incompatible version
		return Entry{}, false, errors.Join(err, c.Delete(ctx, userID))
	}
	return e, true, nil
}

func (c *RedisCache) Set(ctx context.Context, userID string, e Entry) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, redisKeyPrefix+userID, raw, c.ttl)
}

func (c *RedisCache) Delete(ctx context.Context, userID string) error {
	return c.store.Delete(ctx, redisKeyPrefix+userID)
}
