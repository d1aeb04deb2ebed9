package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is a byte store whose keys share a prefix.
type Storage struct {
	db     redis.UniversalClient
	prefix string
}

func NewStorage(client redis.UniversalClient, prefix string) *Storage {
	return &Storage{db: client, prefix: prefix}
}

// Get returns nil, nil on a cache miss.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := s.db.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

// Set stores val under key; exp <= 0 means no expiration.
func (s *Storage) Set(ctx context.Context, key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	if exp < 0 {
		exp = 0
	}
	return s.db.Set(ctx, s.prefix+key, val, exp).Err()
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.db.Del(ctx, s.prefix+key).Err()
}

func (s *Storage) Conn() redis.UniversalClient {
	return s.db
}
