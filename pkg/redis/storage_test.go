package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formsaas/pkg/redis"
)

func setup(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestStorage(t *testing.T) {
	t.Parallel()
	mr, client := setup(t)
	s := redis.NewStorage(client, "test:")
	ctx := context.Background()

	val, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Minute))
	assert.True(t, mr.Exists("test:k"))

	val, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	mr.FastForward(2 * time.Minute)
	val, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, s.Set(ctx, "k2", []byte("v2"), 0))
	require.NoError(t, s.Delete(ctx, "k2"))
	assert.False(t, mr.Exists("test:k2"))

	// empty keys and values are ignored
	require.NoError(t, s.Set(ctx, "", []byte("x"), 0))
	require.NoError(t, s.Set(ctx, "empty", nil, 0))
	assert.False(t, mr.Exists("test:empty"))
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL: "redis://" + mr.Addr() + "/0",
			RetryAttempts: 1,
		})
		require.NoError(t, err)
		defer client.Close()
		assert.NoError(t, redis.Healthcheck(client)(context.Background()))
	})

	t.Run("empty url", func(t *testing.T) {
		_, err := redis.Connect(context.Background(), redis.Config{})
		assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: "http://nope"})
		assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
	})

	t.Run("unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		_, err := redis.Connect(context.Background(), redis.Config{
			ConnectionURL:  "redis://" + addr,
			RetryAttempts:  2,
			RetryInterval:  10 * time.Millisecond,
			ConnectTimeout: time.Second,
		})
		assert.ErrorIs(t, err, redis.ErrRedisNotReady)
	})
}

func TestHealthcheckFails(t *testing.T) {
	t.Parallel()
	mr, client := setup(t)
	mr.Close()
	assert.ErrorIs(t, redis.Healthcheck(client)(context.Background()), redis.ErrHealthcheckFailed)
}
