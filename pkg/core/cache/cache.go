// File: cache.go
// Title: In-Memory TTL Cache
// Description: Thread-safe generic cache with per-entry expiry, a size
//              bound with oldest-first eviction, hit statistics and a
//              background sweep that stops on Close.
// Author: msto63
// Version: v0.1.0
// Created: 2025-04-03
// Modified: 2025-04-03
//
// Change History:
// - 2025-04-03 v0.1.0: Generic cache for parse results

package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value   V
	created time.Time
	expires time.Time // zero never expires
}

func (e *entry[V]) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// Config holds cache configuration
type Config struct {
	MaxItems      int
	TTL           time.Duration // zero keeps entries until evicted
	SweepInterval time.Duration
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{
		MaxItems:      1024,
		TTL:           10 * time.Minute,
		SweepInterval: time.Minute,
	}
}

// Stats is a snapshot of cache usage
type Stats struct {
	Size    int
	Hits    int64
	Misses  int64
	Evicted int64
}

// HitRate returns hits as a percentage of lookups
func (s Stats) HitRate() float64 {
	if total := s.Hits + s.Misses; total > 0 {
		return float64(s.Hits) / float64(total) * 100
	}
	return 0
}

// Cache maps string keys to values of type V
type Cache[V any] struct {
	mu       sync.Mutex
	items    map[string]*entry[V]
	maxItems int
	ttl      time.Duration
	now      func() time.Time

	hits, misses, evicted int64

	done     chan struct{}
	closeOne sync.Once
}

// New creates a cache and starts its sweep goroutine
func New[V any](cfg Config) *Cache[V] {
	d := DefaultConfig()
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = d.MaxItems
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = d.SweepInterval
	}
	c := &Cache[V]{
		items:    make(map[string]*entry[V]),
		maxItems: cfg.MaxItems,
		ttl:      cfg.TTL,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go c.sweepLoop(cfg.SweepInterval)
	return c
}

// Get returns the value stored under key
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if ok && e.expired(c.now()) {
		delete(c.items, key)
		ok = false
	}
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	return e.value, true
}

// Set stores value under key with the default TTL
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores value under key; ttl <= 0 never expires
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxItems {
		c.evictOldest()
	}
	e := &entry[V]{value: value, created: now}
	if ttl > 0 {
		e.expires = now.Add(ttl)
	}
	c.items[key] = e
}

// GetOrSet returns the cached value for key, or computes, stores and
// returns it. Errors from fn are not cached.
func (c *Cache[V]) GetOrSet(key string, fn func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := fn()
	if err != nil {
		return v, err
	}
	c.Set(key, v)
	return v, nil
}

// Delete removes key
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear removes all entries
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entry[V])
}

// Stats returns a usage snapshot
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Size: len(c.items), Hits: c.hits, Misses: c.misses, Evicted: c.evicted}
}

// Close stops the sweep goroutine. The cache stays usable.
func (c *Cache[V]) Close() {
	c.closeOne.Do(func() { close(c.done) })
}

// evictOldest drops the entry stored first; callers hold the lock
func (c *Cache[V]) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for key, e := range c.items {
		if !found || e.created.Before(oldest) {
			oldestKey, oldest, found = key, e.created, true
		}
	}
	if found {
		delete(c.items, oldestKey)
		c.evicted++
	}
}

func (c *Cache[V]) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

// sweep removes expired entries
func (c *Cache[V]) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, e := range c.items {
		if e.expired(now) {
			delete(c.items, key)
		}
	}
}
