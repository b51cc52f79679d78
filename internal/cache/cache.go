// Package cache holds short-lived query results in process memory.
//
// Entries are keyed by an arbitrary string and expire five minutes after they
// were stored. Expiry is lazy: an expired entry is only removed when a Get
// finds it. There is no capacity bound and no background sweeper, so callers
// are expected to namespace their keys (e.g. "search_" + term) and keep the
// key space small.
package cache

import (
	"sync"
	"time"
)

// TTL is how long an entry stays readable after Set.
const TTL = 5 * time.Minute

// entry is a single stored value plus the instant it was written.
type entry struct {
	data      any
	timestamp time.Time
}

// Cache is a mutex-guarded map with per-entry expiration.
//
// A Cache is created explicitly with New and injected where it is needed,
// so tests can build a fresh one (or Clear it) between cases.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// Option configures a Cache at construction time.
type Option func(*Cache)

// WithClock replaces time.Now as the cache's notion of the current time.
// Tests use it to simulate the passage of time without sleeping.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New returns an empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Set stores value under key, overwriting any previous entry.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	c.entries[key] = entry{data: value, timestamp: c.now()}
	c.mu.Unlock()
}

// Get returns the value stored under key if it is at most TTL old.
// An entry older than TTL is deleted and reported as absent.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.timestamp) > TTL {
		delete(c.entries, key)
		return nil, false
	}
	return e.data, true
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Len reports how many entries are stored, including expired entries that
// have not been visited by Get yet.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
