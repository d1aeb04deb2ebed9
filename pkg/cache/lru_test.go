package cache_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/formsaas/pkg/cache"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestLRU_Basic(t *testing.T) {
	t.Parallel()
	c := cache.NewLRU[string, int](3, 0)

	c.Put("a", 1)
	c.Put("b", 2)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	c.Put("a", 10)
	v, _ = c.Get("a")
	assert.Equal(t, 10, v)
	assert.Equal(t, 2, c.Len())

	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))
	assert.Equal(t, 1, c.Len())
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()
	c := cache.NewLRU[string, int](2, 0)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a") // b is now the oldest
	c.Put("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestLRU_Expiration(t *testing.T) {
	t.Parallel()
	clk := &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := cache.NewLRU[string, string](10, time.Minute, cache.WithClock(clk.Now))

	c.Put("k", "v")
	clk.Advance(59 * time.Second)
	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	clk.Advance(time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry is dropped on access")

	// Put restarts the ttl
	c.Put("k", "v1")
	clk.Advance(30 * time.Second)
	c.Put("k", "v2")
	clk.Advance(45 * time.Second)
	v, ok = c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()
	c := cache.NewLRU[string, int](50, time.Minute)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := range 100 {
				key := fmt.Sprintf("k%d", (i+j)%80)
				c.Put(key, j)
				c.Get(key)
				if j%10 == 0 {
					c.Remove(key)
				}
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 50)
}

func TestNewLRU_PanicsOnZeroCapacity(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { cache.NewLRU[string, int](0, 0) })
}
