// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"path"
)

// CanonicalPath permanently redirects requests whose path is not in clean
// form, so each page has one URL for caches and crawlers. "/privacy/",
// "//privacy" and "/x/../privacy" all land on "/privacy"; the query string
// is kept.
func CanonicalPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		canonical := canonicalPath(r.URL.Path)
		if canonical == r.URL.Path {
			next.ServeHTTP(w, r)
			return
		}

		u := *r.URL
		u.Path, u.RawPath = canonical, ""
		http.Redirect(w, r, u.RequestURI(), http.StatusMovedPermanently)
	})
}

func canonicalPath(p string) string {
	if p == "" {
		return "/"
	}
	return path.Clean("/" + p)
}
