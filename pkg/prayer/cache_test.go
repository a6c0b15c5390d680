package prayer

import (
	"fmt"
	"testing"
)

func TestCachePutGet(t *testing.T) {
	c := NewCache(3)
	times := &Times{Fajr: "05:00"}
	key := CacheKey("2026-02-18", "Lyon", "France")

	if got := c.Get(key); got != nil {
		t.Fatalf("expected miss, got %v", got)
	}
	c.Put(key, times)
	if got := c.Get(key); got != times {
		t.Fatalf("expected cached times back")
	}
}

func TestCacheEvictsOldestKey(t *testing.T) {
	c := NewCache(3)
	for day := 10; day < 13; day++ {
		key := CacheKey(fmt.Sprintf("2026-02-%d", day), "Lyon", "France")
		c.Put(key, &Times{})
	}
	if c.Len() != 3 {
		t.Fatalf("cache len = %d, want 3", c.Len())
	}

	// Inserting a fourth entry evicts the smallest key, which is the
	// oldest date.
	c.Put(CacheKey("2026-02-13", "Lyon", "France"), &Times{})
	if c.Len() != 3 {
		t.Fatalf("cache len after eviction = %d, want 3", c.Len())
	}
	if got := c.Get(CacheKey("2026-02-10", "Lyon", "France")); got != nil {
		t.Fatalf("oldest entry should have been evicted")
	}
	if got := c.Get(CacheKey("2026-02-13", "Lyon", "France")); got == nil {
		t.Fatalf("newest entry missing")
	}
}

func TestCacheOverwriteDoesNotEvict(t *testing.T) {
	c := NewCache(2)
	k1 := CacheKey("2026-02-10", "Lyon", "France")
	k2 := CacheKey("2026-02-11", "Lyon", "France")
	c.Put(k1, &Times{Fajr: "05:00"})
	c.Put(k2, &Times{})
	c.Put(k1, &Times{Fajr: "05:01"})

	if c.Len() != 2 {
		t.Fatalf("cache len = %d, want 2", c.Len())
	}
	if got := c.Get(k1); got == nil || got.Fajr != "05:01" {
		t.Fatalf("overwrite lost: %v", got)
	}
	if got := c.Get(k2); got == nil {
		t.Fatalf("sibling entry evicted by overwrite")
	}
}
