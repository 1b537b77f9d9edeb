package data

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// CacheEntry represents one cached monthly archive.
type CacheEntry struct {
	Points    []PricePoint
	ExpiresAt time.Time
}

// ArchiveCache provides in-memory caching for downloaded NYISO months.
// NYISO archives for past months never change, but the cache is still
// opt-in (ENABLE_NYISO_CACHE=true) so batch jobs don't silently hold a
// year of price data in memory. TTL is configurable via NYISO_CACHE_TTL.
type ArchiveCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
}

var globalCache *ArchiveCache
var cacheOnce sync.Once

// GetCache returns the global cache instance if caching is enabled,
// nil otherwise.
func GetCache() *ArchiveCache {
	if os.Getenv("ENABLE_NYISO_CACHE") != "true" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 24 * time.Hour
		if ttlStr := os.Getenv("NYISO_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}
		globalCache = &ArchiveCache{
			store: make(map[string]*CacheEntry),
			ttl:   ttl,
		}
	})

	return globalCache
}

// Get retrieves a cached month if present and not expired. Expired entries
// are evicted here; the working set is a handful of months, so no
// background sweeper is needed.
func (c *ArchiveCache) Get(key string) ([]PricePoint, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		delete(c.store, key)
		return nil, false
	}
	return entry.Points, true
}

// Set stores a downloaded month.
func (c *ArchiveCache) Set(key string, points []PricePoint) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Points:    points,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries.
func (c *ArchiveCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

// MonthCacheKey builds the cache key for one archive request.
func MonthCacheKey(dataType string, month time.Time, zone string) string {
	return fmt.Sprintf("%s:%s:%s", dataType, month.Format("200601"), zone)
}
