// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/olegiv/counsel-site/internal/cache"
	"github.com/olegiv/counsel-site/internal/live"
	"github.com/olegiv/counsel-site/internal/logging"
	"github.com/olegiv/counsel-site/internal/theme"
	"github.com/olegiv/counsel-site/internal/util"
	"github.com/olegiv/counsel-site/internal/version"
)

// recentEvents is how many event log entries the verbose health report includes.
const recentEvents = 20

// pinger is implemented by cache backends with a remote connection.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	themes    *theme.Manager
	backend   cache.Cacher
	sessions  *live.Registry
	events    *logging.EventLog
	version   version.Info
	startTime time.Time
}

// NewHealthHandler creates a new health handler. Any dependency may be nil.
func NewHealthHandler(themes *theme.Manager, backend cache.Cacher, sessions *live.Registry, events *logging.EventLog, info version.Info) *HealthHandler {
	return &HealthHandler{
		themes:    themes,
		backend:   backend,
		sessions:  sessions,
		events:    events,
		version:   info,
		startTime: time.Now(),
	}
}

// HealthStatusPublic is the minimal health response for remote callers.
type HealthStatusPublic struct {
	Status string `json:"status"`
}

// HealthStatus is the detailed report served to local callers.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   version.Info     `json:"version"`
	Checks    map[string]Check `json:"checks"`
	Live      *LiveInfo        `json:"live,omitempty"`
	Cache     *cache.Stats     `json:"cache,omitempty"`
	Events    []logging.Event  `json:"events,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// LiveInfo summarizes the live event channel.
type LiveInfo struct {
	ActiveSessions int   `json:"active_sessions"`
	TotalSessions  int64 `json:"total_sessions"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
}

// Health handles GET /health.
// Remote callers get the overall status only; loopback and private-network
// callers get the detailed report, plus runtime figures with ?verbose=true.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Check{
		"theme": h.checkTheme(),
		"cache": h.checkCache(r.Context()),
	}

	overall := "healthy"
	for _, c := range checks {
		if c.Status != "healthy" {
			overall = "degraded"
		}
	}

	statusCode := http.StatusOK
	if overall != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	if !isInternalRequest(r) {
		writeJSON(w, statusCode, HealthStatusPublic{Status: overall})
		return
	}

	status := HealthStatus{
		Status:    overall,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    checks,
	}
	if h.sessions != nil {
		status.Live = &LiveInfo{
			ActiveSessions: h.sessions.Active(),
			TotalSessions:  h.sessions.Total(),
		}
	}
	if sp, ok := h.backend.(cache.StatsProvider); ok {
		stats := sp.Stats()
		status.Cache = &stats
	}
	if h.events != nil {
		status.Events = h.events.Recent(recentEvents)
	}
	if r.URL.Query().Get("verbose") == "true" {
		status.System = getSystemInfo()
	}

	writeJSON(w, statusCode, status)
}

// Liveness handles GET /health/live.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready. The site is ready once a theme is active.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	check := h.checkTheme()
	if check.Status != "healthy" {
		resp := map[string]string{"status": "not_ready"}
		if isInternalRequest(r) {
			resp["message"] = check.Message
		}
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *HealthHandler) checkTheme() Check {
	if h.themes == nil {
		return Check{Status: "unhealthy", Message: "No theme manager"}
	}
	active := h.themes.Active()
	if active == nil {
		return Check{Status: "unhealthy", Message: "No active theme"}
	}
	return Check{Status: "healthy", Message: active.Name}
}

// checkCache pings remote cache backends. The memory backend is always healthy.
func (h *HealthHandler) checkCache(ctx context.Context) Check {
	if h.backend == nil {
		return Check{Status: "healthy", Message: "Disabled"}
	}

	p, ok := h.backend.(pinger)
	if !ok {
		return Check{Status: "healthy", Message: "In memory"}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := p.Ping(ctx)
	latency := time.Since(start)
	if err != nil {
		return Check{Status: "unhealthy", Message: err.Error(), Latency: latency.String()}
	}
	return Check{Status: "healthy", Message: "Connected", Latency: latency.String()}
}

// isInternalRequest reports whether the caller is on loopback or a private network.
// Only the connection address counts; forwarding headers are client-controlled.
func isInternalRequest(r *http.Request) bool {
	return util.IsInternalAddr(r.RemoteAddr)
}

func getSystemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     formatBytes(m.Alloc),
		MemSys:       formatBytes(m.Sys),
	}
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
