// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

const testPrefix = "counsel-test:"

// newTestRedis connects a RedisCache to an in-process Redis.
func newTestRedis(t *testing.T, mr *miniredis.Miniredis) *RedisCache {
	t.Helper()
	rc, err := NewRedisCacheFromURL("redis://"+mr.Addr()+"/0", testPrefix, time.Minute)
	if err != nil {
		t.Fatalf("connecting to miniredis: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })
	return rc
}

func TestRedisCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := newTestRedis(t, mr)
	ctx := context.Background()

	if err := rc.Set(ctx, "hero", []byte("Finding your path"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !mr.Exists(testPrefix + "hero") {
		t.Fatalf("key not stored under prefix; keys = %v", mr.Keys())
	}
	if ttl := mr.TTL(testPrefix + "hero"); ttl != time.Minute {
		t.Errorf("TTL = %v, want default of 1m", ttl)
	}

	got, err := rc.Get(ctx, "hero")
	if err != nil || string(got) != "Finding your path" {
		t.Fatalf("Get = %q, %v", got, err)
	}
	if ok, err := rc.Has(ctx, "hero"); err != nil || !ok {
		t.Errorf("Has = %v, %v", ok, err)
	}

	if err := rc.Delete(ctx, "hero"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := rc.Get(ctx, "hero"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after Delete: %v, want ErrCacheMiss", err)
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := newTestRedis(t, mr)
	ctx := context.Background()

	if err := rc.Set(ctx, "services", []byte("x"), 10*time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	mr.FastForward(11 * time.Second)

	if _, err := rc.Get(ctx, "services"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Get after expiry: %v, want ErrCacheMiss", err)
	}
}

func TestRedisCacheDeleteByPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := newTestRedis(t, mr)
	ctx := context.Background()

	for _, key := range []string{"page:v1:home", "page:v1:privacy", "page:v2:home", "fragment:nav"} {
		if err := rc.Set(ctx, key, []byte("<html>"), 0); err != nil {
			t.Fatalf("Set %s: %v", key, err)
		}
	}
	if err := mr.Set("other-app:page:home", "keep"); err != nil {
		t.Fatal(err)
	}

	if err := rc.DeleteByPrefix(ctx, "page:"); err != nil {
		t.Fatalf("DeleteByPrefix: %v", err)
	}

	keys := mr.Keys()
	slices.Sort(keys)
	want := []string{testPrefix + "fragment:nav", "other-app:page:home"}
	if !slices.Equal(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}

	if err := rc.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if keys := mr.Keys(); !slices.Equal(keys, []string{"other-app:page:home"}) {
		t.Errorf("Clear removed foreign keys: %v", keys)
	}
}

func TestRedisCacheStats(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := newTestRedis(t, mr)
	ctx := context.Background()

	_ = rc.Set(ctx, "a", []byte("1"), 0)
	_ = rc.Set(ctx, "b", []byte("2"), 0)
	_, _ = rc.Get(ctx, "a")
	_, _ = rc.Get(ctx, "missing")

	s := rc.Stats()
	if s.Backend != "redis" || s.Hits != 1 || s.Misses != 1 || s.Sets != 2 || s.Items != 2 {
		t.Errorf("Stats = %+v", s)
	}
	if s.HitRate != 50 {
		t.Errorf("HitRate = %v, want 50", s.HitRate)
	}

	rc.ResetStats()
	if s := rc.Stats(); s.Hits != 0 || s.Misses != 0 || s.Sets != 0 {
		t.Errorf("after ResetStats: %+v", s)
	}
}

func TestRedisCacheClosed(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := newTestRedis(t, mr)
	ctx := context.Background()

	if err := rc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := rc.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := rc.Get(ctx, "a"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Get = %v", err)
	}
	if err := rc.Set(ctx, "a", nil, 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Set = %v", err)
	}
	if err := rc.Ping(ctx); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("Ping = %v", err)
	}
}

func TestRedisPagesSharedAcrossReplicas(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	first := NewPageCache(newTestRedis(t, mr), time.Minute, "v1")
	second := NewPageCache(newTestRedis(t, mr), time.Minute, "v1")

	page, err := first.Get(ctx, "home", func() ([]byte, error) { return []byte("<main>hello</main>"), nil })
	if err != nil {
		t.Fatalf("first replica: %v", err)
	}
	again, err := second.Get(ctx, "home", func() ([]byte, error) {
		return nil, errors.New("second replica should not render")
	})
	if err != nil {
		t.Fatalf("second replica: %v", err)
	}
	if again.ETag != page.ETag || string(again.Body) != string(page.Body) {
		t.Errorf("replicas disagree: %q/%s vs %q/%s", again.Body, again.ETag, page.Body, page.ETag)
	}
}

func TestNewRedisCacheErrors(t *testing.T) {
	tests := map[string]RedisCacheOptions{
		"missing url":  {},
		"bad scheme":   {URL: "http://cache:6379"},
		"nobody there": {URL: "redis://127.0.0.1:1/0", DialTimeout: 200 * time.Millisecond},
	}
	for name, opts := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := NewRedisCache(opts); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
