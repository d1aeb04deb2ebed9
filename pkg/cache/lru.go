package cache

import (
	"container/list"
	"sync"
	"time"
)

type lruEntry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// LRU is a thread-safe LRU cache with per-entry expiration.
type LRU[K comparable, V any] struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	items    map[K]*list.Element
	eviction *list.List
}

// Option configures an LRU.
type Option func(*lruOptions)

type lruOptions struct {
	now func() time.Time
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *lruOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewLRU creates a cache holding at most capacity entries. A ttl <= 0 keeps
// entries until they are evicted. It panics on a non-positive capacity.
func NewLRU[K comparable, V any](capacity int, ttl time.Duration, opts ...Option) *LRU[K, V] {
	if capacity <= 0 {
		panic("LRU cache capacity must be positive")
	}
	o := lruOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return &LRU[K, V]{
		capacity: capacity,
		ttl:      ttl,
		now:      o.now,
		items:    make(map[K]*list.Element),
		eviction: list.New(),
	}
}

// Get returns a fresh value and marks it as recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	elem, ok := c.items[key]
	if !ok {
		return zero, false
	}
	entry := elem.Value.(*lruEntry[K, V])
	if c.expired(entry) {
		c.removeElement(elem)
		return zero, false
	}
	c.eviction.MoveToFront(elem)
	return entry.value, true
}

// Put adds or replaces a value and restarts its time to live.
func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*lruEntry[K, V])
		entry.value = value
		entry.expiresAt = expiresAt
		c.eviction.MoveToFront(elem)
		return
	}

	c.items[key] = c.eviction.PushFront(&lruEntry[K, V]{key: key, value: value, expiresAt: expiresAt})
	if c.eviction.Len() > c.capacity {
		if oldest := c.eviction.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}
}

// Remove deletes key and reports whether it was present.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if ok {
		c.removeElement(elem)
	}
	return ok
}

// Len counts stored entries, including expired ones not yet dropped.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}

// Must be called with lock held.
func (c *LRU[K, V]) expired(e *lruEntry[K, V]) bool {
	return !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt)
}

// Must be called with lock held.
func (c *LRU[K, V]) removeElement(elem *list.Element) {
	c.eviction.Remove(elem)
	delete(c.items, elem.Value.(*lruEntry[K, V]).key)
}
