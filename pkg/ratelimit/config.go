package ratelimit

import "time"

// Config sizes the buckets. PerMinute is the refill rate, Burst the capacity.
type Config struct {
	PerMinute       float64       `env:"VERIFY_RATE_PER_MIN" envDefault:"10"`
	Burst           int           `env:"VERIFY_BURST" envDefault:"5"`
	CleanupInterval time.Duration `env:"RATELIMIT_CLEANUP_INTERVAL" envDefault:"5m"`
}

func (c Config) validate() error {
	if c.PerMinute <= 0 || c.Burst <= 0 {
		return ErrInvalidLimit
	}
	return nil
}
