package cache

import (
	"testing"
	"time"

	"trends-go/pkg/trends"
)

func sampleResult(value int) trends.SeriesResult {
	return trends.SeriesResult{
		{Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Values: map[string]int{"a": value}},
	}
}

func TestSeriesCache_SetGet(t *testing.T) {
	cache := NewSeriesCache(10, 0)

	cache.Set("k1", sampleResult(10))

	result, ok := cache.Get("k1")
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if result[0].Values["a"] != 10 {
		t.Errorf("Expected cached value 10, got %d", result[0].Values["a"])
	}

	if _, ok := cache.Get("missing"); ok {
		t.Error("Expected cache miss for unknown key")
	}
}

func TestSeriesCache_LRUEviction(t *testing.T) {
	cache := NewSeriesCache(2, 0)

	cache.Set("k1", sampleResult(1))
	cache.Set("k2", sampleResult(2))

	// Touch k1 so k2 becomes the eviction candidate.
	cache.Get("k1")

	cache.Set("k3", sampleResult(3))

	if _, ok := cache.Get("k2"); ok {
		t.Error("Expected k2 to be evicted")
	}
	if _, ok := cache.Get("k1"); !ok {
		t.Error("Expected k1 to survive eviction")
	}
	if cache.Size() != 2 {
		t.Errorf("Expected size 2, got %d", cache.Size())
	}
}

func TestSeriesCache_TTLExpiry(t *testing.T) {
	cache := NewSeriesCache(10, 20*time.Millisecond)

	cache.Set("k1", sampleResult(1))

	if _, ok := cache.Get("k1"); !ok {
		t.Fatal("Expected hit before expiry")
	}

	time.Sleep(30 * time.Millisecond)

	if _, ok := cache.Get("k1"); ok {
		t.Error("Expected miss after TTL expiry")
	}
	if cache.Size() != 0 {
		t.Errorf("Expected expired entry removed, size %d", cache.Size())
	}
}

func TestSeriesCache_Clear(t *testing.T) {
	cache := NewSeriesCache(10, 0)

	cache.Set("k1", sampleResult(1))
	cache.Set("k2", sampleResult(2))
	cache.Clear()

	if cache.Size() != 0 {
		t.Errorf("Expected empty cache, size %d", cache.Size())
	}

	stats := cache.Stats()
	if stats.Size != 0 || stats.MaxSize != 10 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}
