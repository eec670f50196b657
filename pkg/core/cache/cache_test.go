package cache

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func newTestCache(t *testing.T, cfg Config) *Cache[string] {
	t.Helper()
	c := New[string](cfg)
	t.Cleanup(c.Close)
	return c
}

func TestCache_SetGet(t *testing.T) {
	c := newTestCache(t, DefaultConfig())

	c.Set("a", "alpha")

	got, ok := c.Get("a")
	if !ok || got != "alpha" {
		t.Errorf("Get(a) = %q, %v; want alpha, true", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should miss")
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.HitRate != 50 {
		t.Errorf("Stats() = %+v", stats)
	}
}

func TestCache_Expiration(t *testing.T) {
	c := newTestCache(t, DefaultConfig())

	c.SetWithTTL("short", "gone", time.Millisecond)
	c.SetWithTTL("forever", "kept", 0)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("expired entry should not be returned")
	}
	if _, ok := c.Get("forever"); !ok {
		t.Error("entry without TTL should not expire")
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}
}

func TestCache_EvictsOldest(t *testing.T) {
	c := newTestCache(t, Config{MaxItems: 2})

	c.Set("first", "1")
	time.Sleep(time.Millisecond)
	c.Set("second", "2")
	time.Sleep(time.Millisecond)
	c.Set("third", "3")

	if c.Size() != 2 {
		t.Fatalf("Size() = %d, want 2", c.Size())
	}
	if _, ok := c.Get("first"); ok {
		t.Error("oldest entry should be evicted")
	}

	// overwriting an existing key never evicts
	c.Set("third", "3b")
	if _, ok := c.Get("second"); !ok {
		t.Error("overwrite should not evict")
	}
}

func TestCache_DeleteClear(t *testing.T) {
	c := newTestCache(t, DefaultConfig())
	c.Set("a", "1")
	c.Set("b", "2")

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry still present")
	}

	c.Clear()
	if c.Size() != 0 {
		t.Errorf("Size() after Clear = %d", c.Size())
	}
}

func TestCache_GetOrSet(t *testing.T) {
	c := newTestCache(t, DefaultConfig())
	calls := 0
	compute := func() (string, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrSet("k", compute)
		if err != nil || v != "value" {
			t.Fatalf("GetOrSet() = %q, %v", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}

	boom := errors.New("boom")
	if _, err := c.GetOrSet("other", func() (string, error) { return "", boom }); !errors.Is(err, boom) {
		t.Errorf("GetOrSet() error = %v, want boom", err)
	}
	if _, ok := c.Get("other"); ok {
		t.Error("failed computation must not be cached")
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := newTestCache(t, Config{MaxItems: 50})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := ContentKey("", strings.Repeat("x", n))
			c.Set(key, key)
			c.Get(key)
		}(i)
	}
	wg.Wait()

	if c.Size() > 50 {
		t.Errorf("Size() = %d exceeds MaxItems", c.Size())
	}
}

func TestContentKey(t *testing.T) {
	tests := []struct {
		name      string
		namespace string
		content   string
		prefix    string
		length    int
	}{
		{"plain", "", "int x;", "", 64},
		{"namespaced", "check", "int x;", "check:", 70},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := ContentKey(tt.namespace, tt.content)
			if !strings.HasPrefix(key, tt.prefix) || len(key) != tt.length {
				t.Errorf("ContentKey() = %q", key)
			}
		})
	}

	if ContentKey("", "a") == ContentKey("", "b") {
		t.Error("different content must give different keys")
	}
}
