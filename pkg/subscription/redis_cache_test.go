package subscription_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formsaas/pkg/redis"
	"github.com/dmitrymomot/formsaas/pkg/subscription"
)

func newRedisCache(t *testing.T, ttl time.Duration) (*subscription.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return subscription.NewRedisCache(redis.NewStorage(client, "test:"), ttl), mr
}

func TestRedisCache(t *testing.T) {
	t.Parallel()
	c, mr := newRedisCache(t, time.Minute)
	ctx := context.Background()
	expires := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)

	_, ok, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	entry := subscription.Entry{Profile: &subscription.Profile{UserID: "u1", Status: "active", ExpiresAt: &expires}}
	require.NoError(t, c.Set(ctx, "u1", entry))
	assert.True(t, mr.Exists("test:subscription:profile:u1"))

	got, ok, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "active", got.Profile.Status)
	assert.True(t, expires.Equal(*got.Profile.ExpiresAt))

	require.NoError(t, c.Set(ctx, "ghost", subscription.Entry{Missing: true}))
	got, ok, err = c.Get(ctx, "ghost")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, got.Missing)

	mr.FastForward(2 * time.Minute)
	_, ok, _ = c.Get(ctx, "u1")
	assert.False(t, ok)
}

func TestRedisCache_CorruptEntryIsDropped(t *testing.T) {
	t.Parallel()
	c, mr := newRedisCache(t, time.Minute)
	require.NoError(t, mr.Set("test:subscription:profile:u1", "not json"))

	_, ok, err := c.Get(context.Background(), "u1")
	assert.False(t, ok)
	assert.Error(t, err)
	assert.False(t, mr.Exists("test:subscription:profile:u1"))
}

func TestQuery_WithRedisCache(t *testing.T) {
	t.Parallel()
	c, _ := newRedisCache(t, time.Minute)
	store := newCountingStore(subscription.Profile{UserID: "u1", Status: "canceled"})
	q := newQuery(store, subscription.WithCache(c))

	assert.Equal(t, subscription.StatusCanceled, q.Load(context.Background(), "u1").Status)
	assert.Equal(t, subscription.StatusCanceled, q.Load(context.Background(), "u1").Status)
	assert.Equal(t, int32(1), store.calls.Load())

	q.Invalidate(context.Background(), "u1")
	q.Load(context.Background(), "u1")
	assert.Equal(t, int32(2), store.calls.Load())
}

func TestQuery_CacheFailureFallsBackToStore(t *testing.T) {
	t.Parallel()
	c, mr := newRedisCache(t, time.Minute)
	mr.Close()
	store := newCountingStore(subscription.Profile{UserID: "u1", Status: "active"})
	q := newQuery(store, subscription.WithCache(c))

	assert.True(t, q.Load(context.Background(), "u1").IsActive)
}
