// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
)

// StaticCache sets Cache-Control on theme and asset responses. URLs carrying
// the asset version (?v=...) change on every release, so they are marked
// immutable. Error responses are never cached, so a file that was briefly
// missing does not stay missing in browsers.
func StaticCache(maxAge int) func(http.Handler) http.Handler {
	public := "public, max-age=" + strconv.Itoa(maxAge)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			policy := public
			if r.URL.Query().Get("v") != "" {
				policy += ", immutable"
			}
			next.ServeHTTP(&cachePolicyWriter{ResponseWriter: w, policy: policy}, r)
		})
	}
}

// cachePolicyWriter picks the Cache-Control value once the status is known.
type cachePolicyWriter struct {
	http.ResponseWriter
	policy  string
	decided bool
}

func (cw *cachePolicyWriter) WriteHeader(code int) {
	if !cw.decided {
		cw.decided = true
		if code < http.StatusBadRequest {
			cw.Header().Set("Cache-Control", cw.policy)
		} else {
			cw.Header().Set("Cache-Control", "no-store")
		}
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *cachePolicyWriter) Write(b []byte) (int, error) {
	if !cw.decided {
		cw.WriteHeader(http.StatusOK)
	}
	return cw.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (cw *cachePolicyWriter) Unwrap() http.ResponseWriter { return cw.ResponseWriter }

// NoStore marks responses as uncacheable.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
