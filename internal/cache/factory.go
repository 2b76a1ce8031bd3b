// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"cmp"
	"log/slog"
	"net/url"
	"time"
)

// Config picks and sizes the page cache backend. An empty RedisURL selects
// the in-process memory backend.
type Config struct {
	RedisURL        string // redis://[:password@]host:6379/0
	Prefix          string // Redis key prefix
	DefaultTTL      time.Duration
	MaxSize         int // memory only; 0 is unbounded
	CleanupInterval time.Duration
}

// New opens the configured backend. When Redis is configured but does not
// answer, the memory backend is used instead and a warning is logged; a
// single replica serves correctly either way.
func New(cfg Config, logger *slog.Logger) Cacher {
	if logger == nil {
		logger = slog.Default()
	}
	ttl := cmp.Or(cfg.DefaultTTL, time.Hour)

	if cfg.RedisURL != "" {
		where := RedactURL(cfg.RedisURL)
		rc, err := NewRedisCacheFromURL(cfg.RedisURL, cfg.Prefix, ttl)
		if err != nil {
			logger.Warn("redis page cache unavailable, using memory", "url", where, "error", err)
		} else {
			logger.Info("page cache backend", "backend", "redis", "url", where, "prefix", rc.prefix)
			return rc
		}
	}

	logger.Info("page cache backend", "backend", "memory", "max_size", cfg.MaxSize)
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      ttl,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: cmp.Or(cfg.CleanupInterval, time.Minute),
	})
}

// RedactURL hides the password in a connection URL so it can be logged.
func RedactURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "<unparsable>"
	}
	return u.Redacted()
}
