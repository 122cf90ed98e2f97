// Package weather holds the process-wide weather snapshot cache used to
// avoid redundant upstream calls for nearby coordinates.
package weather

import (
	"fmt"
	"sync"
	"time"

	"github.com/rrabbani2/GolfMaps/schema"
)

// DefaultTTL is how long a cached snapshot stays fresh.
const DefaultTTL = 10 * time.Minute

type cacheEntry struct {
	data      schema.WeatherData
	fetchedAt time.Time
}

// Cache maps rounded coordinates to recently fetched weather snapshots.
// Entries are evicted lazily on read once stale; there is no background
// sweeper. Safe for concurrent use; concurrent Puts to the same key are
// last-write-wins.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	ttl        time.Duration
	maxEntries int

	now func() time.Time
}

// NewCache creates a cache with the default 10-minute TTL. maxEntries
// bounds the number of entries; 0 means unbounded, which is acceptable
// for the low cardinality of real-world course coordinates.
func NewCache(maxEntries int) *Cache {
	return &Cache{
		entries:    make(map[string]cacheEntry),
		ttl:        DefaultTTL,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// CacheKey rounds coordinates to 2 decimal places, about 1km of
// granularity, so nearby lookups share a snapshot.
func CacheKey(lat, lng float64) string {
	return fmt.Sprintf("%.2f,%.2f", lat, lng)
}

// Get returns the cached snapshot for key if one was stored within the
// TTL. A stale entry is removed and reported as a miss.
func (c *Cache) Get(key string) (schema.WeatherData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return schema.WeatherData{}, false
	}

	if c.now().Sub(entry.fetchedAt) > c.ttl {
		delete(c.entries, key)
		return schema.WeatherData{}, false
	}

	return entry.data, true
}

// Put stores a snapshot for key, unconditionally overwriting any previous
// entry. When the cache is bounded and would overflow, the entry with the
// oldest fetch time is evicted first.
func (c *Cache) Put(key string, data schema.WeatherData) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		if _, exists := c.entries[key]; !exists {
			c.evictOldestLocked()
		}
	}

	c.entries[key] = cacheEntry{
		data:      data,
		fetchedAt: c.now(),
	}
}

// Size returns the number of entries currently held, stale ones included.
func (c *Cache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) evictOldestLocked() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range c.entries {
		if oldestKey == "" || entry.fetchedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.fetchedAt
		}
	}

	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
