package server

import (
	"sync"
	"time"

	"StockCompass/internal/model"
)

// Cache is an in-memory recommendation cache keyed by the request profile.
// Generating a fresh set walks the whole dataset, so results are reused
// for the configured TTL and flushed whenever the watcher refreshes.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

type cacheEntry struct {
	recs []model.Recommendation
	at   time.Time
}

// NewCache creates a cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl, entries: map[string]cacheEntry{}}
}

// Get returns a cached result that has not expired.
func (c *Cache) Get(key string) ([]model.Recommendation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok || time.Since(entry.at) >= c.ttl {
		return nil, false
	}
	return entry.recs, true
}

// Set stores a result under the key.
func (c *Cache) Set(key string, recs []model.Recommendation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{recs: recs, at: time.Now()}
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]cacheEntry{}
}
