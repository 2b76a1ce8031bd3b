// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/olegiv/counsel-site/internal/theme"
	"github.com/olegiv/counsel-site/internal/util"
)

// ThemeStatic serves the active theme's static directory under RouteStatic.
// Directory listings are never served.
func ThemeStatic(themes *theme.Manager) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		active := themes.Active()
		if active == nil || active.Static == nil {
			http.NotFound(w, r)
			return
		}

		name, ok := staticName(r.URL.Path, RouteStatic)
		if !ok {
			http.NotFound(w, r)
			return
		}

		info, err := fs.Stat(active.Static, name)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		http.ServeFileFS(w, r, active.Static, name)
	})
}

// Assets serves operator supplied files (counselor photos, OG images) from dir.
func Assets(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, ok := staticName(r.URL.Path, RouteAssets)
		if !ok {
			http.NotFound(w, r)
			return
		}

		filePath, err := util.JoinWithin(dir, name)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		info, err := os.Stat(filePath)
		if err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		http.ServeFile(w, r, filePath)
	})
}

// staticName turns a request path into a slash separated name relative to prefix.
// path.Clean is used rather than filepath.Clean so fs.FS lookups keep forward slashes.
func staticName(reqPath, prefix string) (string, bool) {
	rest, found := strings.CutPrefix(reqPath, prefix+"/")
	if !found || rest == "" {
		return "", false
	}
	if util.HasTraversal(rest) {
		return "", false
	}
	name := path.Clean(rest)
	if path.IsAbs(name) || name == "." || !fs.ValidPath(name) {
		return "", false
	}
	return name, true
}
