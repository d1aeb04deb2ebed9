package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pool and pings it, retrying with a linearly growing delay.
// Cancelling ctx aborts the retry loop.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolCfg, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for i := range attempts {
		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrFailedToOpenDBConnection, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrFailedToOpenDBConnection, lastErr)
}

// PoolConfig parses the connection string and applies the pool settings.
// Zero or negative settings keep the pgx defaults.
func PoolConfig(cfg Config) (*pgxpool.Config, error) {
	if cfg.ConnectionString == "" {
		return nil, ErrEmptyConnectionString
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	if cfg.MaxOpenConns > 0 {
		poolCfg.MaxConns = cfg.MaxOpenConns
	}
	if cfg.MaxIdleConns > 0 {
		poolCfg.MinConns = min(cfg.MaxIdleConns, poolCfg.MaxConns)
	}
	if cfg.HealthCheckPeriod > 0 {
		poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod
	}
	if cfg.MaxConnIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	return poolCfg, nil
}

// Healthcheck returns a readiness check that pings the pool.
func Healthcheck(pool *pgxpool.Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
