// Package cache is the in-process TTL cache used in front of the CMS and the
// catalog label lookups.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is how long fetched content stays fresh.
const DefaultTTL = 5 * time.Minute

type entry struct {
	value     any
	expiresAt time.Time
}

// TTLCache maps keys to values that expire a fixed duration after they were
// stored. Expired entries are dropped when read; nothing sweeps in the
// background.
type TTLCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	entries  map[string]entry
	observer func(hit bool)
}

func NewTTLCache(ttl time.Duration) *TTLCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &TTLCache{ttl: ttl, now: time.Now, entries: make(map[string]entry)}
}

// WithClock replaces the time source. Intended for tests.
func (c *TTLCache) WithClock(now func() time.Time) *TTLCache {
	c.now = now
	return c
}

// WithObserver registers fn to be told about every hit and miss.
func (c *TTLCache) WithObserver(fn func(hit bool)) *TTLCache {
	c.observer = fn
	return c
}

func (c *TTLCache) Get(key string) (any, bool) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if c.observer != nil {
		c.observer(ok)
	}
	if !ok {
		return nil, false
	}
	return e.value, true
}

func (c *TTLCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, expiresAt: c.now().Add(c.ttl)}
}

func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear drops every entry.
func (c *TTLCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

func (c *TTLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Fetch returns the cached value for key, or calls load and caches its
// result. Failed loads are not cached.
func Fetch[T any](c *TTLCache, key string, load func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}
	c.Set(key, v)
	return v, nil
}
