package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect parses the URL and pings the server until it answers or the
// attempts run out.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}
	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	var lastErr error
	for range max(cfg.RetryAttempts, 1) {
		client := redis.NewClient(opts)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrRedisNotReady, lastErr)
}

// Healthcheck returns a readiness check that pings the server.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
