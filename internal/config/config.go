// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the server configuration from COUNSEL_ environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env        string `env:"COUNSEL_ENV" envDefault:"development"`
	ServerHost string `env:"COUNSEL_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"COUNSEL_SERVER_PORT" envDefault:"8080"`
	LogLevel   string `env:"COUNSEL_LOG_LEVEL" envDefault:"info"`

	// Content and presentation
	ContentPath string `env:"COUNSEL_CONTENT_PATH"` // empty = embedded default record
	SiteURL     string `env:"COUNSEL_SITE_URL"`     // overrides metadata.url
	AssetsDir   string `env:"COUNSEL_ASSETS_DIR"`   // operator images served at /assets
	CustomDir   string `env:"COUNSEL_CUSTOM_DIR" envDefault:"./custom"`
	ActiveTheme string `env:"COUNSEL_THEME" envDefault:"counsel"`

	// Crawlers refused the whole site in robots.txt, e.g. "GPTBot,CCBot".
	BlockedCrawlers []string `env:"COUNSEL_BLOCKED_CRAWLERS" envSeparator:","`

	// Cache configuration
	RedisURL     string        `env:"COUNSEL_REDIS_URL"` // optional shared page cache
	CachePrefix  string        `env:"COUNSEL_CACHE_PREFIX" envDefault:"counsel:"`
	PageCacheTTL time.Duration `env:"COUNSEL_PAGE_CACHE_TTL" envDefault:"1h"`
	CacheMaxSize int           `env:"COUNSEL_CACHE_MAX_SIZE" envDefault:"1000"`

	// Live event channel
	LiveAllowedOrigins  []string `env:"COUNSEL_LIVE_ALLOWED_ORIGINS" envSeparator:","`
	LiveEventsPerSecond float64  `env:"COUNSEL_LIVE_EVENTS_PER_SECOND" envDefault:"30"`
	LiveEventBurst      int      `env:"COUNSEL_LIVE_EVENT_BURST" envDefault:"60"`
	LiveMaxMessageBytes int64    `env:"COUNSEL_LIVE_MAX_MESSAGE_BYTES" envDefault:"4096"`

	// Booking provider overrides
	BookingScriptURL string `env:"COUNSEL_BOOKING_SCRIPT_URL"`
	BookingLinkBase  string `env:"COUNSEL_BOOKING_LINK_BASE"`

	// HTTP
	StaticMaxAge      int           `env:"COUNSEL_STATIC_MAX_AGE" envDefault:"31536000"` // seconds
	RequestTimeout    time.Duration `env:"COUNSEL_REQUEST_TIMEOUT" envDefault:"30s"`
	RequestsPerSecond float64       `env:"COUNSEL_REQUESTS_PER_SECOND" envDefault:"20"`
	RequestBurst      int           `env:"COUNSEL_REQUEST_BURST" envDefault:"40"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	switch c.Env {
	case "development", "production":
	default:
		errs = append(errs, fmt.Errorf("COUNSEL_ENV must be development or production, got %q", c.Env))
	}

	if c.ServerPort < 1 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("COUNSEL_SERVER_PORT out of range: %d", c.ServerPort))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("COUNSEL_LOG_LEVEL must be debug, info, warn or error, got %q", c.LogLevel))
	}

	for name, raw := range map[string]string{
		"COUNSEL_SITE_URL":           c.SiteURL,
		"COUNSEL_BOOKING_SCRIPT_URL": c.BookingScriptURL,
		"COUNSEL_BOOKING_LINK_BASE":  c.BookingLinkBase,
	} {
		if raw != "" && !isHTTPURL(raw) {
			errs = append(errs, fmt.Errorf("%s must be an absolute http(s) URL, got %q", name, raw))
		}
	}

	for _, origin := range c.LiveAllowedOrigins {
		if !isHTTPURL(origin) {
			errs = append(errs, fmt.Errorf("COUNSEL_LIVE_ALLOWED_ORIGINS entry must be an http(s) origin, got %q", origin))
		}
	}

	if c.LiveEventsPerSecond <= 0 || c.LiveEventBurst < 1 {
		errs = append(errs, errors.New("COUNSEL_LIVE_EVENTS_PER_SECOND and COUNSEL_LIVE_EVENT_BURST must be positive"))
	}
	if c.RequestsPerSecond <= 0 || c.RequestBurst < 1 {
		errs = append(errs, errors.New("COUNSEL_REQUESTS_PER_SECOND and COUNSEL_REQUEST_BURST must be positive"))
	}
	if c.LiveMaxMessageBytes < 256 {
		errs = append(errs, fmt.Errorf("COUNSEL_LIVE_MAX_MESSAGE_BYTES must be at least 256, got %d", c.LiveMaxMessageBytes))
	}
	if c.PageCacheTTL < 0 || c.RequestTimeout <= 0 || c.StaticMaxAge < 0 {
		errs = append(errs, errors.New("durations and max ages must not be negative"))
	}

	return errors.Join(errs...)
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
