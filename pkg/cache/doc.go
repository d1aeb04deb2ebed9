// Package cache provides a generic, thread-safe LRU cache whose entries
// also expire after a fixed time to live.
//
//	c := cache.NewLRU[string, Entry](1024, 30*time.Second)
//	c.Put("user-1", entry)
//	if e, ok := c.Get("user-1"); ok {
//		// fresh entry
//	}
//
// The least recently used entry is evicted when the cache is full. Expired
// entries are dropped lazily on access.
package cache
