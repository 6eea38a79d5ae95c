// Package cache holds rendered API responses in memory.
// It uses patrickmn/go-cache for TTL-based expiry.
//
// Keys include the catalog generation, so a reload makes every older entry
// unreachable without an explicit flush; the TTL then reclaims them.
package cache

import (
	"strconv"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache wraps go-cache with additional features for HTTP caching.
type Cache struct {
	store *gocache.Cache
}

// New creates a new cache with the given TTL and cleanup interval.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	return &Cache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Key builds a cache key for a query against one catalog generation.
func Key(endpoint, instrument string, generation uint64, rawQuery string) string {
	var b strings.Builder
	b.WriteString(endpoint)
	b.WriteByte('|')
	b.WriteString(instrument)
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(generation, 10))
	b.WriteByte('|')
	b.WriteString(rawQuery)
	return b.String()
}

// Get retrieves a value from the cache.
func (c *Cache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

// Set stores a value in the cache with default TTL.
func (c *Cache) Set(key string, value any) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// Delete removes a value from the cache.
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Clear removes all items from the cache.
func (c *Cache) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of items in the cache.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}

// Stats returns cache statistics.
type Stats struct {
	ItemCount int `json:"item_count"`
}

// GetStats returns current cache statistics.
func (c *Cache) GetStats() Stats {
	return Stats{
		ItemCount: c.store.ItemCount(),
	}
}
