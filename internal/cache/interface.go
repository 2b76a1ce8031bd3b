// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache stores rendered pages in process memory or in Redis.
package cache

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrCacheMiss is returned by Get for absent and expired keys.
	ErrCacheMiss = errors.New("cache miss")
	// ErrCacheClosed is returned by every operation after Close.
	ErrCacheClosed = errors.New("cache closed")
)

// Cacher is a byte-oriented key/value store with per-key expiry, safe for
// concurrent use. A zero ttl passed to Set means the backend default.
type Cacher interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Has(ctx context.Context, key string) (bool, error)
	Clear(ctx context.Context) error
	Close() error
}

// StatsProvider is implemented by backends that count their traffic.
// The health endpoint reports these numbers.
type StatsProvider interface {
	Stats() Stats
	ResetStats()
}

// Stats is a snapshot of backend counters. Redis counters are per process;
// Items is shared across replicas.
type Stats struct {
	Backend string  `json:"backend"` // "memory" or "redis"
	Items   int     `json:"items"`
	Size    int64   `json:"size_bytes,omitempty"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	Sets    int64   `json:"sets"`
	HitRate float64 `json:"hit_rate"` // percent
}

func hitRate(hits, misses int64) float64 {
	if lookups := hits + misses; lookups > 0 {
		return 100 * float64(hits) / float64(lookups)
	}
	return 0
}
