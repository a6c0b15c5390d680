package prayer

import (
	"sort"
	"sync"
)

// DefaultCacheCapacity bounds the number of cached (date, location)
// entries kept in memory.
const DefaultCacheCapacity = 30

// Cache is a bounded key/value store for fetched prayer times. When
// the capacity is exceeded the lexicographically smallest key is
// evicted; keys start with the ISO date, so that is the oldest date.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*Times
}

// NewCache creates a cache holding at most capacity entries. A
// capacity below 1 falls back to DefaultCacheCapacity.
func NewCache(capacity int) *Cache {
	if capacity < 1 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string]*Times),
	}
}

// CacheKey builds the lookup key for a date and location.
func CacheKey(dateISO, city, country string) string {
	return dateISO + "|" + city + "|" + country
}

// Get returns the cached times for a key, or nil if absent.
func (c *Cache) Get(key string) *Times {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key]
}

// Put stores times under a key, evicting the oldest key if the cache
// is full.
func (c *Cache) Put(key string, times *Times) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.capacity {
		keys := make([]string, 0, len(c.entries))
		for k := range c.entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		delete(c.entries, keys[0])
	}
	c.entries[key] = times
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
