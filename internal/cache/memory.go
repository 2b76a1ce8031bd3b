// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"container/list"
	"context"
	"strings"
	"sync"
	"time"
)

// MemoryCache is an in-process LRU cache with per-entry expiry.
type MemoryCache struct {
	mu         sync.Mutex
	items      map[string]*list.Element
	order      *list.List // front = most recently used
	defaultTTL time.Duration
	maxSize    int // 0 = unlimited
	size       int64
	closed     bool
	stopCh     chan struct{}
	now        func() time.Time

	hits, misses, sets int64
}

type memoryEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// MemoryCacheOptions configures the memory cache.
type MemoryCacheOptions struct {
	DefaultTTL      time.Duration
	MaxSize         int           // maximum number of entries (0 = unlimited)
	CleanupInterval time.Duration // sweep interval for expired entries (0 = lazy expiry only)
}

// NewMemoryCache creates a memory cache with the given options.
func NewMemoryCache(opts MemoryCacheOptions) *MemoryCache {
	c := &MemoryCache{
		items:      make(map[string]*list.Element),
		order:      list.New(),
		defaultTTL: opts.DefaultTTL,
		maxSize:    opts.MaxSize,
		stopCh:     make(chan struct{}),
		now:        time.Now,
	}

	if opts.CleanupInterval > 0 {
		go c.sweepLoop(opts.CleanupInterval)
	}

	return c
}

// NewSimpleMemoryCache creates an unbounded memory cache with just a TTL.
func NewSimpleMemoryCache(ttl time.Duration) *MemoryCache {
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      ttl,
		CleanupInterval: time.Minute,
	})
}

// Get returns a copy of the value stored under key and marks it recently used.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrCacheClosed
	}

	e := c.live(key)
	if e == nil {
		c.misses++
		return nil, ErrCacheMiss
	}

	c.order.MoveToFront(c.items[key])
	c.hits++
	return append([]byte(nil), e.value...), nil
}

// Set stores a copy of value. A zero ttl uses the default. When the cache is
// full the least recently used entry makes room; overwrites never evict.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCacheClosed
	}
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	e := &memoryEntry{
		key:       key,
		value:     append([]byte(nil), value...),
		expiresAt: c.now().Add(ttl),
	}

	if el, ok := c.items[key]; ok {
		old := el.Value.(*memoryEntry)
		c.size += int64(len(e.value)) - int64(len(old.value))
		el.Value = e
		c.order.MoveToFront(el)
	} else {
		if c.maxSize > 0 && len(c.items) >= c.maxSize {
			c.evictLocked()
		}
		c.items[key] = c.order.PushFront(e)
		c.size += int64(len(e.value))
	}

	c.sets++
	return nil
}

// Delete removes a key.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCacheClosed
	}
	if el, ok := c.items[key]; ok {
		c.removeLocked(el)
	}
	return nil
}

// Clear removes every entry.
func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCacheClosed
	}
	c.items = make(map[string]*list.Element)
	c.order.Init()
	c.size = 0
	return nil
}

// Has reports whether an unexpired entry exists. It does not touch recency.
func (c *MemoryCache) Has(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false, ErrCacheClosed
	}
	return c.live(key) != nil, nil
}

// Close stops the sweeper. Further calls return ErrCacheClosed.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.stopCh)
	}
	return nil
}

// Stats returns current cache statistics.
func (c *MemoryCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Backend: "memory",
		Hits:    c.hits,
		Misses:  c.misses,
		Sets:    c.sets,
		Items:   len(c.items),
		HitRate: hitRate(c.hits, c.misses),
		Size:    c.size,
	}
}

// ResetStats zeroes the hit, miss and set counters.
func (c *MemoryCache) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits, c.misses, c.sets = 0, 0, 0
}

// DeleteByPrefix removes all keys starting with prefix.
func (c *MemoryCache) DeleteByPrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrCacheClosed
	}
	for key, el := range c.items {
		if strings.HasPrefix(key, prefix) {
			c.removeLocked(el)
		}
	}
	return nil
}

// live returns the entry for key, dropping it first if it has expired.
func (c *MemoryCache) live(key string) *memoryEntry {
	el, ok := c.items[key]
	if !ok {
		return nil
	}
	e := el.Value.(*memoryEntry)
	if c.now().After(e.expiresAt) {
		c.removeLocked(el)
		return nil
	}
	return e
}

// evictLocked frees one slot: an expired entry if there is one, else the
// least recently used.
func (c *MemoryCache) evictLocked() {
	if c.sweepLocked() > 0 {
		return
	}
	if el := c.order.Back(); el != nil {
		c.removeLocked(el)
	}
}

func (c *MemoryCache) removeLocked(el *list.Element) {
	e := c.order.Remove(el).(*memoryEntry)
	delete(c.items, e.key)
	c.size -= int64(len(e.value))
}

// sweepLocked drops expired entries and reports how many went.
func (c *MemoryCache) sweepLocked() int {
	now := c.now()
	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if now.After(el.Value.(*memoryEntry).expiresAt) {
			c.removeLocked(el)
			removed++
		}
		el = prev
	}
	return removed
}

func (c *MemoryCache) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			c.sweepLocked()
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}

var (
	_ Cacher        = (*MemoryCache)(nil)
	_ StatsProvider = (*MemoryCache)(nil)
)
