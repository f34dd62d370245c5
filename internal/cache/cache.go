// Package cache provides the in-session store for rendered pages, so a
// repeated search does not pay for a second browser render. Nothing is
// persisted across process restarts.
package cache

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Cache stores rendered HTML keyed by URL.
type Cache interface {
	// Get returns the cached document and whether the key was present
	// and unexpired.
	Get(key string) (string, bool)

	// Set stores a document under the key, replacing any previous entry.
	Set(key, html string)

	// Clear drops all entries.
	Clear()
}

type entry struct {
	html      string
	expiresAt time.Time
}

// MemoryCache is a TTL-bounded in-memory cache. Expired entries are
// dropped lazily on access.
type MemoryCache struct {
	mu      sync.RWMutex
	store   map[string]entry
	ttl     time.Duration
	maxKeys int
}

// NewMemoryCache creates a cache holding at most maxKeys documents for ttl
// each.
func NewMemoryCache(ttl time.Duration, maxKeys int) *MemoryCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if maxKeys <= 0 {
		maxKeys = 32
	}
	return &MemoryCache{
		store:   make(map[string]entry),
		ttl:     ttl,
		maxKeys: maxKeys,
	}
}

func (c *MemoryCache) Get(key string) (string, bool) {
	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.store, key)
		c.mu.Unlock()
		return "", false
	}
	return e.html, true
}

func (c *MemoryCache) Set(key, html string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxKeys {
		c.evictOldest()
	}
	c.store[key] = entry{html: html, expiresAt: time.Now().Add(c.ttl)}
	log.Debug().Str("key", key).Int("entries", len(c.store)).Msg("Page cached")
}

func (c *MemoryCache) Clear() {
	c.mu.Lock()
	c.store = make(map[string]entry)
	c.mu.Unlock()
}

// evictOldest removes the entry closest to expiry. Called with the lock
// held.
func (c *MemoryCache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.store {
		if oldestKey == "" || e.expiresAt.Before(oldest) {
			oldestKey = k
			oldest = e.expiresAt
		}
	}
	if oldestKey != "" {
		delete(c.store, oldestKey)
	}
}
