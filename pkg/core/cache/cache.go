package cache

import (
	"sync"
	"time"
)

// Entry represents a cached item with expiration
type Entry[V any] struct {
	Value      V
	Expiration time.Time
	Created    time.Time
}

// IsExpired checks if the entry has expired
func (e *Entry[V]) IsExpired() bool {
	if e.Expiration.IsZero() {
		return false // Never expires
	}
	return time.Now().After(e.Expiration)
}

// Cache is a thread-safe in-memory cache with TTL support
type Cache[V any] struct {
	mu       sync.RWMutex
	items    map[string]*Entry[V]
	maxItems int
	ttl      time.Duration

	// Metrics
	hits   int64
	misses int64

	stop     chan struct{}
	stopOnce sync.Once
}

// Config holds cache configuration
type Config struct {
	MaxItems        int
	TTL             time.Duration
	CleanupInterval time.Duration
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{
		MaxItems:        256,
		TTL:             10 * time.Minute,
		CleanupInterval: time.Minute,
	}
}

// Stats holds cache statistics
type Stats struct {
	Size    int     `json:"size"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// New creates a new cache instance. Close stops its cleanup goroutine.
func New[V any](cfg Config) *Cache[V] {
	defaults := DefaultConfig()
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = defaults.MaxItems
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaults.TTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = defaults.CleanupInterval
	}

	c := &Cache[V]{
		items:    make(map[string]*Entry[V]),
		maxItems: cfg.MaxItems,
		ttl:      cfg.TTL,
		stop:     make(chan struct{}),
	}

	go c.cleanupLoop(cfg.CleanupInterval)

	return c
}

// Get retrieves a value from the cache
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.items[key]
	if !exists || entry.IsExpired() {
		if exists {
			delete(c.items, key)
		}
		c.misses++
		var zero V
		return zero, false
	}

	c.hits++
	return entry.Value, true
}

// Set stores a value in the cache with the default TTL
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL; ttl <= 0 never expires
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxItems {
		c.evictOldest()
	}

	now := time.Now()
	var exp time.Time
	if ttl > 0 {
		exp = now.Add(ttl)
	}

	c.items[key] = &Entry[V]{
		Value:      value,
		Expiration: exp,
		Created:    now,
	}
}

// Delete removes a value from the cache
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear removes all items from the cache
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*Entry[V])
}

// Size returns the number of items in the cache
func (c *Cache[V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Stats returns cache statistics
func (c *Cache[V]) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Stats{Size: len(c.items), Hits: c.hits, Misses: c.misses}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total) * 100
	}
	return s
}

// Close stops the cleanup goroutine. The cache stays usable.
func (c *Cache[V]) Close() {
	c.stopOnce.Do(func() { close(c.stop) })
}

// evictOldest removes the entry created first (must be called with lock held)
func (c *Cache[V]) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range c.items {
		if oldestKey == "" || entry.Created.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.Created
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

// cleanupLoop periodically removes expired entries
func (c *Cache[V]) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stop:
			return
		}
	}
}

// cleanup removes all expired entries
func (c *Cache[V]) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, entry := range c.items {
		if entry.IsExpired() {
			delete(c.items, key)
		}
	}
}

// GetOrSet gets a value or computes and stores it if not present
func (c *Cache[V]) GetOrSet(key string, fn func() (V, error)) (V, error) {
	if val, ok := c.Get(key); ok {
		return val, nil
	}

	val, err := fn()
	if err != nil {
		var zero V
		return zero, err
	}

	c.Set(key, val)
	return val, nil
}
