package recommend

import (
	"time"

	"tableflip.dev/fatloss/pkg/store"
)

// cacheKey is the recommendation slot in the store's state keyspace.
const cacheKey = "recommend.cache"

// CacheEntry is one fetched payload with its fetch instant. Entries are
// never mutated; a refresh writes a new entry over the old one.
type CacheEntry struct {
	Items     []Item        `json:"items"`
	FetchedAt time.Time     `json:"fetchedAt"`
	TTL       time.Duration `json:"ttl"`
}

// ValidAt reports whether the entry is still fresh at the given instant.
func (e *CacheEntry) ValidAt(now time.Time) bool {
	return now.Sub(e.FetchedAt) < e.TTL
}

// Cache persists the single recommendation cache entry.
type Cache struct {
	Persistence store.Persistence
	TTL         time.Duration
}

// Load returns the stored entry, or false when none exists.
func (c *Cache) Load() (*CacheEntry, bool, error) {
	entry := &CacheEntry{}
	ok, err := c.Persistence.Get(cacheKey, entry)
	if err != nil || !ok {
		return nil, false, err
	}
	return entry, true, nil
}

// Store supersedes the cache with a fresh entry stamped at now.
func (c *Cache) Store(items []Item, now time.Time) (*CacheEntry, error) {
	entry := &CacheEntry{Items: items, FetchedAt: now, TTL: c.TTL}
	if err := c.Persistence.Set(cacheKey, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Clear drops the cache entry. Benign when none exists.
func (c *Cache) Clear() error {
	return c.Persistence.Remove(cacheKey)
}
