package subscription

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/formsaas/pkg/logger"
)

// Query loads subscription state for users. It is safe for concurrent use.
type Query struct {
	store ProfileStore
	cache Cache
	now   func() time.Time
	log   *slog.Logger

	group singleflight.Group

	mu   sync.Mutex
	gens map[string]uint64
}

// QueryOption configures a Query.
type QueryOption func(*Query)

// WithCache enables caching of lookups.
func WithCache(c Cache) QueryOption {
	return func(q *Query) { q.cache = c }
}

// WithClock replaces time.Now for expiration checks.
func WithClock(now func() time.Time) QueryOption {
	return func(q *Query) {
		if now != nil {
			q.now = now
		}
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) QueryOption {
	return func(q *Query) {
		if l != nil {
			q.log = l
		}
	}
}

// NewQuery returns a query client over store. Without WithCache every
// Load reaches the store.
func NewQuery(store ProfileStore, opts ...QueryOption) *Query {
	q := &Query{
		store: store,
		now:   time.Now,
		log:   slog.Default(),
		gens:  make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(q)
	}
	q.log = q.log.With(logger.Component("subscription"))
	return q
}

// Load returns the current state for userID. Concurrent calls for the same
// user share one store lookup. An empty user id is inactive without a lookup.
func (q *Query) Load(ctx context.Context, userID string) State {
	if userID == "" {
		return Inactive()
	}

	if q.cache != nil {
		e, ok, err := q.cache.Get(ctx, userID)
		if err != nil {
			q.log.WarnContext(ctx, "subscription cache read failed", logger.UserID(userID), logger.Error(err))
		} else if ok {
			return q.derive(e)
		}
	}

	gen := q.generation(userID)
	v, err, _ := q.group.Do(userID, func() (any, error) {
		return q.fetch(context.WithoutCancel(ctx), userID, gen)
	})
	if err != nil {
		q.log.ErrorContext(ctx, "subscription lookup failed", logger.UserID(userID), logger.Error(err))
		return Failed(err)
	}
	return q.derive(v.(Entry))
}

// fetch reads the store and caches the result unless userID was
// invalidated after gen was taken.
func (q *Query) fetch(ctx context.Context, userID string, gen uint64) (Entry, error) {
	p, err := q.store.GetProfile(ctx, userID)
	var e Entry
	switch {
	case errors.Is(err, ErrProfileNotFound):
		e = Entry{Missing: true}
	case err != nil:
		if !errors.Is(err, ErrStoreFailure) {
			err = errors.Join(ErrStoreFailure, err)
		}
		return Entry{}, err
	default:
		e = Entry{Profile: p}
	}

	if q.cache == nil {
		return e, nil
	}

	// Invalidate bumps the generation under mu before deleting, so a write
	// made while holding mu is either current or removed by that delete.
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.gens[userID] != gen {
		q.log.DebugContext(ctx, "dropping lookup superseded by invalidation", logger.UserID(userID))
		return e, nil
	}
	if err := q.cache.Set(ctx, userID, e); err != nil {
		q.log.WarnContext(ctx, "subscription cache write failed", logger.UserID(userID), logger.Error(err))
	}
	return e, nil
}

func (q *Query) derive(e Entry) State {
	if e.Missing {
		return Inactive()
	}
	return Derive(e.Profile, q.now())
}

// Invalidate drops the cached lookup and starts a new cycle for userID, so
// started hooks load again on their next Start.
func (q *Query) Invalidate(ctx context.Context, userID string) {
	if userID == "" {
		return
	}
	q.group.Forget(userID)

	q.mu.Lock()
	q.gens[userID]++
	q.mu.Unlock()

	if q.cache != nil {
		if err := q.cache.Delete(ctx, userID); err != nil {
			q.log.WarnContext(ctx, "subscription cache invalidation failed", logger.UserID(userID), logger.Error(err))
		}
	}
}

func (q *Query) generation(userID string) uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.gens[userID]
}

// Use returns a hook bound to userID.
func (q *Query) Use(userID string) *Hook {
	return newHook(q, userID)
}
