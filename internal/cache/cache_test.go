// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package cache

import (
	"strings"
	"sync"
	"testing"
	"time"
)

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newTestCache(capacity int, ttl time.Duration) (*Cache[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[string](capacity, ttl)
	c.now = clock.Now
	return c, clock
}

func TestCache_GetSet(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(4, time.Minute)
	c.Set("a", "ardbeg")

	if got, ok := c.Get("a"); !ok || got != "ardbeg" {
		t.Errorf("Get(a) = %q, %v", got, ok)
	}
	if _, ok := c.Get("b"); ok {
		t.Error("Get(b) found a missing key")
	}

	c.Set("a", "lagavulin")
	if got, _ := c.Get("a"); got != "lagavulin" {
		t.Errorf("Get(a) after overwrite = %q", got)
	}
	if c.Stats().Keys != 1 {
		t.Errorf("Keys = %d, want 1", c.Stats().Keys)
	}

	stats := c.Stats()
	if stats.Hits != 2 || stats.Misses != 1 || stats.Keys != 1 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestCache_Expiry(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache(4, time.Minute)
	c.Set("a", "ardbeg")

	clock.Advance(59 * time.Second)
	if _, ok := c.Get("a"); !ok {
		t.Fatal("entry expired early")
	}

	clock.Advance(2 * time.Second)
	if _, ok := c.Get("a"); ok {
		t.Error("entry survived its ttl")
	}
	if c.Stats().Keys != 0 {
		t.Errorf("expired entry not removed, Keys = %d", c.Stats().Keys)
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("Evictions = %d, want 1", c.Stats().Evictions)
	}
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache(2, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")
	c.Get("a") // b is now the oldest
	c.Set("c", "3")

	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry was kept")
	}
	for _, key := range []string{"a", "c"} {
		if _, ok := c.Get(key); !ok {
			t.Errorf("Get(%s) missing", key)
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	c := New[int](0, 0)
	if c.capacity != defaultCapacity || c.ttl != defaultTTL {
		t.Errorf("capacity = %d, ttl = %s", c.capacity, c.ttl)
	}
}

func TestStats_HitRate(t *testing.T) {
	t.Parallel()

	if got := (Stats{}).HitRate(); got != 0 {
		t.Errorf("empty HitRate() = %v", got)
	}
	if got := (Stats{Hits: 3, Misses: 1}).HitRate(); got != 75 {
		t.Errorf("HitRate() = %v, want 75", got)
	}
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	type params struct {
		User    string
		Version uint64
	}
	a := GenerateKey("analysis", params{User: "alice", Version: 1})
	b := GenerateKey("analysis", params{User: "alice", Version: 1})
	c := GenerateKey("analysis", params{User: "alice", Version: 2})

	if a != b {
		t.Errorf("same params produced %q and %q", a, b)
	}
	if a == c {
		t.Error("different params produced the same key")
	}
	if !strings.HasPrefix(a, "analysis:") || len(a) != len("analysis:")+32 {
		t.Errorf("key = %q", a)
	}
}

func TestCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := New[int](64, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := GenerateKey("k", j%100)
				c.Set(key, n)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if c.Stats().Keys > 64 {
		t.Errorf("Keys = %d exceeds capacity", c.Stats().Keys)
	}
}
