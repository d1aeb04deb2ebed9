package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Validator is implemented by config structs that check their own invariants
// after being parsed from the environment.
type Validator interface {
	Validate() error
}

type configCache struct {
	mu     sync.RWMutex
	values map[reflect.Type]any
}

var (
	globalCache = &configCache{values: make(map[reflect.Type]any)}

	defaultEnvLoaded sync.Once
)

// LoadEnv reads the given .env files into the process environment. Variables
// that are already set are not overwritten. With no arguments it reads the
// default .env file and ignores its absence.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		defaultEnvLoaded.Do(func() {
			// the default .env file is optional
			_ = godotenv.Load()
		})
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// Load parses environment variables into v. Each configuration type is
// parsed once; later calls copy the cached value into v.
//
//	var cfg httpserver.Config
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	_ = LoadEnv()

	key := reflect.TypeFor[T]()

	globalCache.mu.RLock()
	cached, ok := globalCache.values[key]
	globalCache.mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()

	// another goroutine may have parsed it while we waited for the lock
	if cached, ok := globalCache.values[key]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	if val, ok := any(parsed).(Validator); ok {
		if err := val.Validate(); err != nil {
			return errors.Join(ErrInvalidConfig, err)
		}
	}

	globalCache.values[key] = parsed
	*v = parsed
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration %s: %v", reflect.TypeFor[T](), err))
	}
}

// ResetCache drops every cached configuration.
func ResetCache() {
	globalCache.mu.Lock()
	globalCache.values = make(map[reflect.Type]any)
	globalCache.mu.Unlock()
}
