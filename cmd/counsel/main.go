// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"compress/gzip"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/counsel-site/internal/cache"
	"github.com/olegiv/counsel-site/internal/config"
	"github.com/olegiv/counsel-site/internal/content"
	"github.com/olegiv/counsel-site/internal/handler"
	"github.com/olegiv/counsel-site/internal/live"
	"github.com/olegiv/counsel-site/internal/logging"
	"github.com/olegiv/counsel-site/internal/middleware"
	"github.com/olegiv/counsel-site/internal/theme"
	"github.com/olegiv/counsel-site/internal/themes"
	"github.com/olegiv/counsel-site/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

// compressMinSize is the smallest body worth gzipping.
const compressMinSize = 1024

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "counsel - counseling practice website\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  COUNSEL_ENV            Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  COUNSEL_SERVER_PORT    Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  COUNSEL_CONTENT_PATH   Site content YAML file (default: embedded record)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  COUNSEL_SITE_URL       Public base URL, overrides metadata.url\n")
		_, _ = fmt.Fprintf(os.Stderr, "  COUNSEL_ASSETS_DIR     Directory served at /assets (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  COUNSEL_CUSTOM_DIR     Custom themes directory (default: ./custom)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  COUNSEL_THEME          Active theme name (default: counsel)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  COUNSEL_REDIS_URL      Redis URL for the shared page cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  COUNSEL_BLOCKED_CRAWLERS  Comma separated user agents refused in robots.txt\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}.Resolve()

	if *showVersion {
		_, _ = fmt.Println(info.String())
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	events := logging.NewEventLog(logging.DefaultCapacity)
	logger := newLogger(cfg, events)
	slog.SetDefault(logger)
	slog.Info("starting", "version", info.Version, "commit", info.GitCommit, "env", cfg.Env)

	rec, err := loadContent(cfg, logger)
	if err != nil {
		return err
	}

	themeManager := theme.NewManager(themes.FS, cfg.CustomDir, logger)
	themeManager.SetFuncMap(handler.TemplateFuncs())
	if err := themeManager.LoadThemes(); err != nil {
		return fmt.Errorf("loading themes: %w", err)
	}
	if err := themeManager.SetActiveTheme(cfg.ActiveTheme); err != nil {
		return fmt.Errorf("activating theme: %w", err)
	}

	backend := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      cfg.PageCacheTTL,
		MaxSize:         cfg.CacheMaxSize,
		CleanupInterval: time.Minute,
	}, logger)
	defer func() {
		if err := backend.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	// Pages cached by an older build, theme or record never match this version.
	pageVersion := handler.ContentVersion(rec) + "-" + info.AssetVersion() + "-" + cfg.ActiveTheme
	pageCache := cache.NewPageCache(backend, cfg.PageCacheTTL, pageVersion)
	if err := pageCache.Invalidate(context.Background()); err != nil {
		slog.Warn("failed to clear stale pages", "category", logging.CategoryCache, "error", err)
	}

	site := handler.NewSite(rec, themeManager, pageCache, logger, handler.Options{
		AssetVersion:     info.AssetVersion(),
		DisallowCrawling: cfg.IsDevelopment(),
		BlockedCrawlers:  cfg.BlockedCrawlers,
	})

	liveCfg := live.DefaultConfig()
	liveCfg.AllowedOrigins = cfg.LiveAllowedOrigins
	liveCfg.MaxMessageBytes = cfg.LiveMaxMessageBytes
	liveCfg.Session = live.SessionConfig{
		EventsPerSecond: cfg.LiveEventsPerSecond,
		Burst:           cfg.LiveEventBurst,
	}
	liveServer := live.NewServer(rec, themeManager, liveCfg, logger)

	healthHandler := handler.NewHealthHandler(themeManager, backend, liveServer.Registry(), events, info)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment(), rec.Booking.ScriptURL, rec.Booking.LinkBase)
	r.Use(middleware.SecurityHeaders(securityConfig))
	r.Use(middleware.CanonicalPath)
	slog.Info("security headers middleware initialized", "hsts", !cfg.IsDevelopment(), "x_frame_options", securityConfig.FrameOptions)

	// Health probes see the connection address, not forwarding headers.
	r.Group(func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Get(handler.RouteHealth, healthHandler.Health)
		r.Get(handler.RouteHealthLive, healthHandler.Liveness)
		r.Get(handler.RouteHealthReady, healthHandler.Readiness)
	})

	publicRateLimiter := middleware.NewClientLimiter(cfg.RequestsPerSecond, cfg.RequestBurst)

	r.Group(func(r chi.Router) {
		r.Use(chimw.RealIP)
		r.Use(publicRateLimiter.Middleware())

		// The live channel is long-lived and upgraded, so it skips the
		// request timeout and the buffering gzip writer.
		r.Handle(handler.RouteLive, liveServer)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(cfg.RequestTimeout))
			r.Use(middleware.Compress(gzip.DefaultCompression, compressMinSize))

			r.Get(handler.RouteHome, site.Home)
			r.Get(handler.RoutePrivacy, site.Legal(handler.DocPrivacy))
			r.Get(handler.RouteTerms, site.Legal(handler.DocTerms))
			r.Get(handler.RouteCancellation, site.Legal(handler.DocCancellation))

			r.Get(handler.RouteRobots, site.Robots)
			r.Get(handler.RouteSitemap, site.Sitemap)
			r.Get(handler.RouteSecurityTxt, site.SecurityTxt)

			staticCache := middleware.StaticCache(cfg.StaticMaxAge)
			r.Handle(handler.RouteStatic+"/*", staticCache(handler.ThemeStatic(themeManager)))
			if cfg.AssetsDir != "" {
				r.Handle(handler.RouteAssets+"/*", staticCache(handler.Assets(cfg.AssetsDir)))
				slog.Info("serving operator assets", "dir", cfg.AssetsDir)
			}
		})
	})

	r.NotFound(site.NotFound)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "theme", cfg.ActiveTheme)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Hijacked live connections are not tracked by srv.Shutdown.
	liveServer.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// newLogger builds the process logger: text in development, JSON otherwise.
// WARN and above are mirrored into the event log shown by /health.
func newLogger(cfg *config.Config, events *logging.EventLog) *slog.Logger {
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	var base slog.Handler
	if cfg.IsDevelopment() {
		base = slog.NewTextHandler(os.Stdout, opts)
	} else {
		base = slog.NewJSONHandler(os.Stdout, opts)
	}
	return slog.New(logging.NewEventLogHandler(base, events))
}

// loadContent reads the content record and applies deployment overrides.
func loadContent(cfg *config.Config, logger *slog.Logger) (*content.Record, error) {
	rec, err := content.Load(cfg.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}

	overridden := false
	if cfg.SiteURL != "" {
		rec.Metadata.URL = cfg.SiteURL
		overridden = true
	}
	if cfg.BookingScriptURL != "" {
		rec.Booking.ScriptURL = cfg.BookingScriptURL
		overridden = true
	}
	if cfg.BookingLinkBase != "" {
		rec.Booking.LinkBase = cfg.BookingLinkBase
		overridden = true
	}
	if overridden {
		if err := rec.Validate(); err != nil {
			return nil, fmt.Errorf("content overrides: %w", err)
		}
	}

	for _, w := range rec.Warnings() {
		logger.Warn("content warning", "category", logging.CategoryContent, "warning", w)
	}

	source := cfg.ContentPath
	if source == "" {
		source = "embedded"
	}
	logger.Info("content loaded",
		"source", source,
		"services", len(rec.Services.Items),
		"testimonials", len(rec.Testimonials.Items))
	return rec, nil
}
