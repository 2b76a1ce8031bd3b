// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCanonicalPath(t *testing.T) {
	h := CanonicalPath(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(r.URL.Path))
	}))

	tests := []struct {
		target   string
		location string // empty means served in place
	}{
		{"/", ""},
		{"/privacy", ""},
		{"/static/css/site.css", ""},
		{"/privacy/", "/privacy"},
		{"/terms/?utm_source=mail", "/terms?utm_source=mail"},
		{"//privacy", "/privacy"},
		{"/a/../cancellation-policy", "/cancellation-policy"},
		{"/./", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.URL.Path, req.URL.RawQuery, _ = strings.Cut(tt.target, "?")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if tt.location == "" {
				if rec.Code != http.StatusOK || rec.Body.String() != req.URL.Path {
					t.Errorf("got %d %q, want page served", rec.Code, rec.Body.String())
				}
				return
			}
			if rec.Code != http.StatusMovedPermanently {
				t.Fatalf("status = %d, want 301", rec.Code)
			}
			if got := rec.Header().Get("Location"); got != tt.location {
				t.Errorf("Location = %q, want %q", got, tt.location)
			}
		})
	}
}

func TestCanonicalPathHelper(t *testing.T) {
	for in, want := range map[string]string{
		"":           "/",
		"/":          "/",
		"home":       "/home",
		"/a//b///":   "/a/b",
		"/../../etc": "/etc",
	} {
		if got := canonicalPath(in); got != want {
			t.Errorf("canonicalPath(%q) = %q, want %q", in, got, want)
		}
	}
}
