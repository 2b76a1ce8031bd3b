// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/counsel-site/internal/cache"
	"github.com/olegiv/counsel-site/internal/live"
	"github.com/olegiv/counsel-site/internal/logging"
	"github.com/olegiv/counsel-site/internal/version"
)

func healthRequest(t *testing.T, h http.HandlerFunc, target, remoteAddr string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func newTestHealthHandler(t *testing.T) *HealthHandler {
	t.Helper()
	backend := cache.NewSimpleMemoryCache(time.Minute)
	t.Cleanup(func() { _ = backend.Close() })

	events := logging.NewEventLog(10)
	logger := slog.New(logging.NewEventLogHandler(slog.NewTextHandler(io.Discard, nil), events))
	logger.Warn("cache miss storm", "category", logging.CategoryCache)

	return NewHealthHandler(testThemes(t), backend, live.NewRegistry(), events, version.Info{Version: "1.2.3"})
}

func TestHealthPublic(t *testing.T) {
	h := newTestHealthHandler(t)

	rec := healthRequest(t, h.Health, RouteHealth, "8.8.8.8:4242")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"status": "healthy"}, body)
}

func TestHealthIgnoresForwardingHeaders(t *testing.T) {
	h := newTestHealthHandler(t)

	req := httptest.NewRequest(http.MethodGet, RouteHealth, nil)
	req.RemoteAddr = "8.8.8.8:4242"
	req.Header.Set("X-Real-IP", "127.0.0.1")
	req.Header.Set("X-Forwarded-For", "10.0.0.1")
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	assert.NotContains(t, rec.Body.String(), "checks")
}

func TestHealthInternal(t *testing.T) {
	h := newTestHealthHandler(t)

	rec := healthRequest(t, h.Health, RouteHealth, "127.0.0.1:50000")
	require.Equal(t, http.StatusOK, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))

	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "1.2.3", status.Version.Version)
	assert.Equal(t, "counsel", status.Checks["theme"].Message)
	assert.Equal(t, "In memory", status.Checks["cache"].Message)
	require.NotNil(t, status.Live)
	assert.Equal(t, 0, status.Live.ActiveSessions)
	require.NotNil(t, status.Cache)
	assert.Equal(t, "memory", status.Cache.Backend)
	require.Len(t, status.Events, 1)
	assert.Equal(t, "cache miss storm", status.Events[0].Message)
	assert.Equal(t, logging.CategoryCache, status.Events[0].Category)
	assert.Nil(t, status.System)
}

func TestHealthVerbose(t *testing.T) {
	h := newTestHealthHandler(t)

	rec := healthRequest(t, h.Health, RouteHealth+"?verbose=true", "10.0.0.5:50000")

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.NotNil(t, status.System)
	assert.NotEmpty(t, status.System.GoVersion)
	assert.Positive(t, status.System.NumCPU)
}

func TestHealthDegradedWithoutTheme(t *testing.T) {
	h := NewHealthHandler(testThemesWithout(t), nil, nil, nil, version.Info{})

	rec := healthRequest(t, h.Health, RouteHealth, "127.0.0.1:50000")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var status HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "unhealthy", status.Checks["theme"].Status)
	assert.Equal(t, "Disabled", status.Checks["cache"].Message)
	assert.Nil(t, status.Live)
	assert.Nil(t, status.Cache)
}

func TestLiveness(t *testing.T) {
	h := NewHealthHandler(nil, nil, nil, nil, version.Info{})

	rec := healthRequest(t, h.Liveness, RouteHealthLive, "8.8.8.8:1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"alive"}`, rec.Body.String())
}

func TestReadiness(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		h := NewHealthHandler(testThemes(t), nil, nil, nil, version.Info{})
		rec := healthRequest(t, h.Readiness, RouteHealthReady, "8.8.8.8:1")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
	})

	t.Run("not ready public", func(t *testing.T) {
		h := NewHealthHandler(testThemesWithout(t), nil, nil, nil, version.Info{})
		rec := healthRequest(t, h.Readiness, RouteHealthReady, "8.8.8.8:1")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"status":"not_ready"}`, rec.Body.String())
	})

	t.Run("not ready internal", func(t *testing.T) {
		h := NewHealthHandler(testThemesWithout(t), nil, nil, nil, version.Info{})
		rec := healthRequest(t, h.Readiness, RouteHealthReady, "127.0.0.1:1")
		assert.JSONEq(t, `{"status":"not_ready","message":"No active theme"}`, rec.Body.String())
	})
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.0 KB", formatBytes(1024))
	assert.Equal(t, "1.5 MB", formatBytes(1536*1024))
}
