// Package cache memoizes generation results for a short TTL so repeated
// requests with the same key skip the upstream call.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/partypulse/partygen/internal/model"
)

// Key derives the cache key from the stable request subset. Seed is part of
// the key so distinct seeds never collide on the same cached batch.
func Key(req *model.GenerationRequest) string {
	return fmt.Sprintf("%s:%s:%d", req.Mode, req.Style, req.Seed)
}

type entry struct {
	value     *model.GenerationResult
	createdAt time.Time
}

// Cache is a bounded TTL cache. Entries expire ttl after insertion; when the
// bound is exceeded the single oldest-inserted entry is evicted, regardless
// of access recency. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	order   []string // insertion order, oldest first
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

// New constructs a cache with the given TTL and entry bound.
func New(ttl time.Duration, maxSize int) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get returns the stored value for key, or nil/false when absent or
// expired. Expired entries are dropped on lookup.
func (c *Cache) Get(key string) (*model.GenerationResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.createdAt) >= c.ttl {
		c.remove(key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry wholesale. When
// the bound is exceeded the oldest-inserted entry is evicted first.
func (c *Cache) Set(key string, value *model.GenerationResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.remove(key)
	}
	if len(c.entries) >= c.maxSize {
		c.remove(c.order[0])
	}
	c.entries[key] = &entry{value: value, createdAt: c.now()}
	c.order = append(c.order, key)
}

// Len reports the current entry count.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// remove drops key from the map and the insertion-order list.
// Caller must hold the lock.
func (c *Cache) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
