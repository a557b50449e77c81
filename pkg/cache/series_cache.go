package cache

import (
	"container/list"
	"sync"
	"time"

	"trends-go/pkg/trends"
)

// cacheEntry holds one cached series with its insertion time.
type cacheEntry struct {
	key       string
	result    trends.SeriesResult
	timestamp time.Time
	element   *list.Element
}

// SeriesCache is an LRU cache with optional TTL for fetched series, keyed by
// the canonical query key. It keeps repeated identical queries from hitting
// the upstream within the TTL window.
type SeriesCache struct {
	maxSize int
	ttl     time.Duration

	mu      sync.RWMutex
	entries map[string]*cacheEntry
	lruList *list.List
}

// CacheStats reports current cache occupancy.
type CacheStats struct {
	Size    int
	MaxSize int
	TTL     time.Duration
}

// NewSeriesCache creates a cache holding at most maxSize series. A zero ttl
// disables expiry.
func NewSeriesCache(maxSize int, ttl time.Duration) *SeriesCache {
	return &SeriesCache{
		maxSize: maxSize,
		ttl:     ttl,
		entries: make(map[string]*cacheEntry),
		lruList: list.New(),
	}
}

// Set stores or refreshes a series under the given key, evicting the least
// recently used entry when the cache is full.
func (sc *SeriesCache) Set(key string, result trends.SeriesResult) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	now := time.Now()

	if entry, exists := sc.entries[key]; exists {
		entry.result = result
		entry.timestamp = now
		sc.lruList.MoveToFront(entry.element)
		return
	}

	entry := &cacheEntry{
		key:       key,
		result:    result,
		timestamp: now,
	}
	entry.element = sc.lruList.PushFront(entry)
	sc.entries[key] = entry

	if len(sc.entries) > sc.maxSize {
		sc.evictOldest()
	}
}

// Get returns the cached series for key, expiring it lazily when the TTL has
// passed.
func (sc *SeriesCache) Get(key string) (trends.SeriesResult, bool) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	entry, exists := sc.entries[key]
	if !exists {
		return nil, false
	}

	if sc.ttl > 0 && time.Since(entry.timestamp) > sc.ttl {
		sc.deleteEntry(entry)
		return nil, false
	}

	sc.lruList.MoveToFront(entry.element)
	return entry.result, true
}

// Delete removes one entry.
func (sc *SeriesCache) Delete(key string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if entry, exists := sc.entries[key]; exists {
		sc.deleteEntry(entry)
	}
}

// Clear drops all entries.
func (sc *SeriesCache) Clear() {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.entries = make(map[string]*cacheEntry)
	sc.lruList = list.New()
}

// Size returns the number of cached series.
func (sc *SeriesCache) Size() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.entries)
}

// Stats returns occupancy statistics.
func (sc *SeriesCache) Stats() CacheStats {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	return CacheStats{
		Size:    len(sc.entries),
		MaxSize: sc.maxSize,
		TTL:     sc.ttl,
	}
}

func (sc *SeriesCache) evictOldest() {
	if element := sc.lruList.Back(); element != nil {
		sc.deleteEntry(element.Value.(*cacheEntry))
	}
}

func (sc *SeriesCache) deleteEntry(entry *cacheEntry) {
	delete(sc.entries, entry.key)
	sc.lruList.Remove(entry.element)
}
