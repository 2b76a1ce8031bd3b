// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryCache_BasicOperations(t *testing.T) {
	cache := NewMemoryCache(MemoryCacheOptions{
		DefaultTTL: time.Hour,
		MaxSize:    100,
	})
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	if err := cache.Set(ctx, "key1", []byte("value1"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	val, err := cache.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(val) != "value1" {
		t.Errorf("expected value1, got %s", string(val))
	}

	has, err := cache.Has(ctx, "key1")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if !has {
		t.Error("expected key1 to exist")
	}

	if err := cache.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "key1"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCache_CacheMiss(t *testing.T) {
	cache := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	if _, err := cache.Get(ctx, "nonexistent"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}

	has, err := cache.Has(ctx, "nonexistent")
	if err != nil {
		t.Fatalf("Has failed: %v", err)
	}
	if has {
		t.Error("expected nonexistent key to not exist")
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := NewMemoryCache(MemoryCacheOptions{DefaultTTL: 50 * time.Millisecond})
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	if err := cache.Set(ctx, "expiring", []byte("value"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, err := cache.Get(ctx, "expiring"); err != nil {
		t.Error("expected key to exist immediately")
	}

	time.Sleep(60 * time.Millisecond)

	if _, err := cache.Get(ctx, "expiring"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after expiration, got %v", err)
	}
	if has, _ := cache.Has(ctx, "expiring"); has {
		t.Error("expired key reported by Has")
	}
}

func TestMemoryCache_ValueIsCopied(t *testing.T) {
	cache := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	value := []byte("original")
	_ = cache.Set(ctx, "k", value, 0)
	value[0] = 'X'

	got, _ := cache.Get(ctx, "k")
	if string(got) != "original" {
		t.Errorf("stored value mutated through caller slice: %q", got)
	}

	got[0] = 'Y'
	again, _ := cache.Get(ctx, "k")
	if string(again) != "original" {
		t.Errorf("stored value mutated through returned slice: %q", again)
	}
}

func TestMemoryCache_MaxSizeEvictsLeastRecentlyUsed(t *testing.T) {
	cache := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour, MaxSize: 2})
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "home", []byte("a"), 0)
	_ = cache.Set(ctx, "privacy", []byte("b"), 0)

	// Reading home makes privacy the least recently used entry.
	if _, err := cache.Get(ctx, "home"); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	_ = cache.Set(ctx, "terms", []byte("c"), 0)

	if has, _ := cache.Has(ctx, "privacy"); has {
		t.Error("expected least recently used entry to be evicted")
	}
	for _, key := range []string{"home", "terms"} {
		if has, _ := cache.Has(ctx, key); !has {
			t.Errorf("expected %s to remain", key)
		}
	}

	// Overwriting an existing key never evicts.
	_ = cache.Set(ctx, "home", []byte("aa"), 0)
	if has, _ := cache.Has(ctx, "terms"); !has {
		t.Error("overwrite evicted an unrelated key")
	}
	if stats := cache.Stats(); stats.Items != 2 || stats.Size != 3 {
		t.Errorf("items=%d size=%d, want 2 and 3", stats.Items, stats.Size)
	}
}

func TestMemoryCache_MaxSizePrefersExpired(t *testing.T) {
	cache := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour, MaxSize: 2})
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	_ = cache.Set(ctx, "stale", []byte("a"), time.Minute)
	_ = cache.Set(ctx, "fresh", []byte("b"), time.Hour)
	_, _ = cache.Get(ctx, "stale")

	now = now.Add(2 * time.Minute)
	_ = cache.Set(ctx, "new", []byte("c"), time.Hour)

	if has, _ := cache.Has(ctx, "fresh"); !has {
		t.Error("expected the unexpired entry to survive while an expired one exists")
	}
	if has, _ := cache.Has(ctx, "stale"); has {
		t.Error("expected expired entry to be dropped")
	}
}

func TestMemoryCache_ClearAndPrefix(t *testing.T) {
	cache := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "page:v1:home", []byte("home"), 0)
	_ = cache.Set(ctx, "page:v1:privacy", []byte("privacy"), 0)
	_ = cache.Set(ctx, "other", []byte("x"), 0)

	if err := cache.DeleteByPrefix(ctx, "page:"); err != nil {
		t.Fatalf("DeleteByPrefix failed: %v", err)
	}
	if has, _ := cache.Has(ctx, "page:v1:home"); has {
		t.Error("expected page:v1:home to be deleted")
	}
	if has, _ := cache.Has(ctx, "other"); !has {
		t.Error("expected other to remain")
	}

	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if stats := cache.Stats(); stats.Items != 0 || stats.Size != 0 {
		t.Errorf("after Clear: items=%d size=%d", stats.Items, stats.Size)
	}
}

func TestMemoryCache_Stats(t *testing.T) {
	cache := NewSimpleMemoryCache(time.Hour)
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	_ = cache.Set(ctx, "k", []byte("12345"), 0)
	_, _ = cache.Get(ctx, "k")
	_, _ = cache.Get(ctx, "k")
	_, _ = cache.Get(ctx, "missing")

	stats := cache.Stats()
	if stats.Backend != "memory" {
		t.Errorf("Backend = %q", stats.Backend)
	}
	if stats.Hits != 2 || stats.Misses != 1 || stats.Sets != 1 {
		t.Errorf("hits=%d misses=%d sets=%d", stats.Hits, stats.Misses, stats.Sets)
	}
	if stats.Size != 5 {
		t.Errorf("Size = %d, want 5", stats.Size)
	}
	if stats.HitRate < 66 || stats.HitRate > 67 {
		t.Errorf("HitRate = %f", stats.HitRate)
	}

	cache.ResetStats()
	if stats := cache.Stats(); stats.Hits != 0 || stats.Misses != 0 {
		t.Error("expected counters to be reset")
	}
}

func TestMemoryCache_Closed(t *testing.T) {
	cache := NewSimpleMemoryCache(time.Hour)
	ctx := context.Background()

	if err := cache.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	if _, err := cache.Get(ctx, "k"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get after close: %v", err)
	}
	if err := cache.Set(ctx, "k", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set after close: %v", err)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	cache := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Hour, MaxSize: 50})
	defer func() { _ = cache.Close() }()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := range 100 {
				key := fmt.Sprintf("key-%d-%d", n, j%10)
				_ = cache.Set(ctx, key, []byte("v"), 0)
				_, _ = cache.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()
}
