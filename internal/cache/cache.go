// Package cache provides the process-wide TTL cache that absorbs
// upstream rate limits. Expiry is lazy: stale entries are treated as
// absent on read and overwritten on the next Set, never evicted.
package cache

import (
	"encoding/json"
	"sync"
	"time"
)

type entry struct {
	value    any
	storedAt time.Time
}

// Cache is a key-value store with a fixed time-to-live. The key space is
// bounded by the symbol/action catalog, so unbounded growth is accepted.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// New creates an empty cache with the given TTL.
func New(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: map[string]entry{},
	}
}

// Get returns the value stored under key, or false if the key is absent
// or its entry is older than the TTL. Raw JSON payloads are returned as
// a copy so no caller can mutate the cached bytes; other value types
// are stored struct-by-value and must not be mutated through contained
// slices.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.storedAt) >= c.ttl {
		return nil, false
	}
	if raw, isRaw := e.value.(json.RawMessage); isRaw {
		out := make(json.RawMessage, len(raw))
		copy(out, raw)
		return out, true
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry and resetting
// its freshness clock.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, storedAt: c.now()}
}
