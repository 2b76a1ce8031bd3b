// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func headersFor(cfg SecurityHeadersConfig, path string) http.Header {
	h := SecurityHeaders(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Header()
}

func TestSecurityHeadersProduction(t *testing.T) {
	h := headersFor(DefaultSecurityHeadersConfig(false), "/")

	want := map[string]string{
		"Strict-Transport-Security": "max-age=31536000; includeSubDomains",
		"X-Frame-Options":           "SAMEORIGIN",
		"X-Content-Type-Options":    "nosniff",
		"Referrer-Policy":           "strict-origin-when-cross-origin",
	}
	for k, v := range want {
		if got := h.Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}
	if csp := h.Get("Content-Security-Policy"); !strings.HasPrefix(csp, "default-src 'self'; script-src 'self';") {
		t.Errorf("CSP = %q", csp)
	}
	if pp := h.Get("Permissions-Policy"); !strings.Contains(pp, "camera=(), geolocation=()") {
		t.Errorf("Permissions-Policy = %q", pp)
	}
}

func TestSecurityHeadersDevelopment(t *testing.T) {
	h := headersFor(DefaultSecurityHeadersConfig(true), "/")

	if got := h.Get("Strict-Transport-Security"); got != "" {
		t.Errorf("HSTS in development: %q", got)
	}
	if csp := h.Get("Content-Security-Policy"); !strings.Contains(csp, "connect-src 'self' ws: wss:;") {
		t.Errorf("development CSP should allow ws:, got %q", csp)
	}
}

func TestSecurityHeadersAllowBookingOrigins(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false,
		"https://app.cal.com/embed/embed.js",
		"https://cal.com/shaikh-counselor",
	)
	csp := cfg.CSP.String()

	for _, want := range []string{
		"script-src 'self' https://app.cal.com https://cal.com;",
		"connect-src 'self' https://app.cal.com https://cal.com;",
		"frame-src 'self' https://app.cal.com https://cal.com;",
	} {
		if !strings.Contains(csp, want) {
			t.Errorf("CSP missing %q\n%s", want, csp)
		}
	}
	if strings.Contains(csp, "img-src 'self' data: https: https://cal.com") {
		t.Error("booking origins leaked into img-src")
	}
}

func TestSecurityHeadersExcludePaths(t *testing.T) {
	cfg := DefaultSecurityHeadersConfig(false)
	cfg.ExcludePaths = []string{"/static/"}

	for path, want := range map[string]bool{
		"/":                    true,
		"/privacy":             true,
		"/static/css/site.css": false,
	} {
		got := headersFor(cfg, path).Get("Content-Security-Policy") != ""
		if got != want {
			t.Errorf("%s: CSP present = %v, want %v", path, got, want)
		}
	}
}

func TestCSPAllow(t *testing.T) {
	csp := CSP{{Name: "default-src", Sources: []string{"'self'"}}}
	csp = csp.Allow("default-src", "'self'", "https://cal.com")
	csp = csp.Allow("upgrade-insecure-requests")
	csp = csp.Allow("worker-src", "'none'")

	want := "default-src 'self' https://cal.com; upgrade-insecure-requests; worker-src 'none'"
	if got := csp.String(); got != want {
		t.Errorf("CSP = %q, want %q", got, want)
	}
}

func TestOrigins(t *testing.T) {
	got := Origins(
		"https://app.cal.com/embed/embed.js",
		"not a url",
		"https://app.cal.com/other",
		"",
		"/relative/path",
		"http://localhost:8080/x",
	)
	want := []string{"https://app.cal.com", "http://localhost:8080"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Origins() = %v, want %v", got, want)
	}
}
