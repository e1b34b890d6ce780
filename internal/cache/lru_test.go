package cache

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestLRUCacheEviction(t *testing.T) {
	var evicted []string
	c := NewLRUCache[string](3, time.Hour, WithEvictCallback(func(key string, _ string) {
		evicted = append(evicted, key)
	}))

	c.Set("key1", "value1")
	c.Set("key2", "value2")
	c.Set("key3", "value3")
	c.Get("key1")
	c.Set("key4", "value4") // evicts key2, the least recently used

	if _, found := c.Get("key2"); found {
		t.Error("key2 should have been evicted")
	}
	for _, k := range []string{"key1", "key3", "key4"} {
		if _, found := c.Get(k); !found {
			t.Errorf("%s should still be cached", k)
		}
	}
	if len(evicted) != 1 || evicted[0] != "key2" {
		t.Errorf("evicted = %v, want [key2]", evicted)
	}
}

func TestLRUCacheTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := NewLRUCache[string](100, time.Minute, WithClock[string](clock.Now))

	c.Set("key1", "value1")
	clock.Advance(30 * time.Second)
	if _, found := c.Get("key1"); !found {
		t.Fatal("key1 should be cached before expiry")
	}

	clock.Advance(31 * time.Second)
	if _, found := c.Get("key1"); found {
		t.Error("key1 should expire ttl after Set without sliding")
	}
}

func TestLRUCacheSlidingTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	c := NewLRUCache[string](100, time.Minute, WithSlidingTTL[string](), WithClock[string](clock.Now))

	c.Set("key1", "value1")
	for i := 0; i < 3; i++ {
		clock.Advance(45 * time.Second)
		if _, found := c.Get("key1"); !found {
			t.Fatalf("access %d: key1 should stay alive while used", i)
		}
	}

	clock.Advance(61 * time.Second)
	if _, found := c.Get("key1"); found {
		t.Error("key1 should expire once idle for longer than ttl")
	}
}

func TestLRUCacheCleanExpired(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	removed := map[string]bool{}
	c := NewLRUCache[string](100, time.Minute,
		WithClock[string](clock.Now),
		WithEvictCallback(func(key, _ string) { removed[key] = true }))

	c.Set("key1", "value1")
	c.Set("key2", "value2")
	clock.Advance(30 * time.Second)
	c.Set("key3", "value3")
	clock.Advance(31 * time.Second)

	if n := c.CleanExpired(); n != 2 {
		t.Errorf("CleanExpired() = %d, want 2", n)
	}
	if !removed["key1"] || !removed["key2"] || removed["key3"] {
		t.Errorf("removed = %v", removed)
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}

func TestLRUCacheDelete(t *testing.T) {
	calls := 0
	c := NewLRUCache[int](10, time.Hour, WithEvictCallback(func(string, int) { calls++ }))
	c.Set("a", 1)
	c.Delete("a")
	c.Delete("a")

	if _, found := c.Get("a"); found {
		t.Error("a should be gone")
	}
	if calls != 1 {
		t.Errorf("evict callback ran %d times, want 1", calls)
	}
}

func TestManagerStopWithoutStart(t *testing.T) {
	m := NewManager()
	m.Stop()
}

func TestManagerCleansRegisteredCaches(t *testing.T) {
	c := NewLRUCache[string](10, time.Millisecond)
	c.Set("k", "v")

	m := NewManager()
	m.Register(c)
	m.StartCleanup(5 * time.Millisecond)
	defer m.Stop()

	deadline := time.Now().Add(time.Second)
	for c.Size() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("manager never cleaned the expired entry")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func BenchmarkLRUCache(b *testing.B) {
	c := NewLRUCache[string](1000, time.Hour, WithSlidingTTL[string]())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%10 == 0 {
			c.Set("bench-key", "value")
		} else {
			c.Get("bench-key")
		}
	}
}
