// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides the HTTP middleware wrapped around the site's
// routes: security headers, compression, caching policy, timeouts and rate
// limiting.
package middleware

import (
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Directive is one Content-Security-Policy directive.
type Directive struct {
	Name    string
	Sources []string
}

// CSP is a Content-Security-Policy whose directives keep their order.
type CSP []Directive

// Allow appends sources to the named directive, adding the directive at the
// end when it is missing. Sources already present are skipped.
func (c CSP) Allow(name string, sources ...string) CSP {
	i := slices.IndexFunc(c, func(d Directive) bool { return d.Name == name })
	if i < 0 {
		return append(c, Directive{Name: name, Sources: slices.Clone(sources)})
	}
	for _, src := range sources {
		if !slices.Contains(c[i].Sources, src) {
			c[i].Sources = append(c[i].Sources, src)
		}
	}
	return c
}

// String renders the header value.
func (c CSP) String() string {
	parts := make([]string, 0, len(c))
	for _, d := range c {
		if len(d.Sources) == 0 {
			parts = append(parts, d.Name)
			continue
		}
		parts = append(parts, d.Name+" "+strings.Join(d.Sources, " "))
	}
	return strings.Join(parts, "; ")
}

// SecurityHeadersConfig selects the headers SecurityHeaders sets.
type SecurityHeadersConfig struct {
	IsDevelopment bool
	CSP           CSP

	// HSTS is the Strict-Transport-Security max-age. Zero, or development
	// mode, omits the header.
	HSTS           time.Duration
	FrameOptions   string
	ReferrerPolicy string

	// DeniedFeatures are written to Permissions-Policy as feature=().
	DeniedFeatures []string

	// ExcludePaths are path prefixes served without these headers.
	ExcludePaths []string
}

// DefaultSecurityHeadersConfig returns the site's policy. embedURLs are the
// booking provider's script and page URLs; their origins may run script,
// open connections and render frames.
func DefaultSecurityHeadersConfig(isDev bool, embedURLs ...string) SecurityHeadersConfig {
	csp := CSP{
		{"default-src", []string{"'self'"}},
		{"script-src", []string{"'self'"}},
		{"style-src", []string{"'self'", "'unsafe-inline'"}},
		{"img-src", []string{"'self'", "data:", "https:"}},
		{"font-src", []string{"'self'", "data:"}},
		{"connect-src", []string{"'self'"}},
		{"frame-src", []string{"'self'"}},
		{"object-src", []string{"'none'"}},
		{"base-uri", []string{"'self'"}},
		{"form-action", []string{"'self'"}},
		{"frame-ancestors", []string{"'self'"}},
	}
	if isDev {
		// The live channel dials plain ws:// when served over http.
		csp = csp.Allow("connect-src", "ws:", "wss:")
	}
	if origins := Origins(embedURLs...); len(origins) > 0 {
		csp = csp.Allow("script-src", origins...)
		csp = csp.Allow("connect-src", origins...)
		csp = csp.Allow("frame-src", origins...)
	}

	return SecurityHeadersConfig{
		IsDevelopment:  isDev,
		CSP:            csp,
		HSTS:           365 * 24 * time.Hour,
		FrameOptions:   "SAMEORIGIN",
		ReferrerPolicy: "strict-origin-when-cross-origin",
		DeniedFeatures: []string{
			"accelerometer", "browsing-topics", "camera", "geolocation",
			"gyroscope", "magnetometer", "microphone", "usb",
		},
	}
}

// Origins returns the distinct scheme://host origins of the given URLs, in
// order. Unparsable and relative URLs are skipped.
func Origins(urls ...string) []string {
	var out []string
	for _, raw := range urls {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			continue
		}
		if origin := u.Scheme + "://" + u.Host; !slices.Contains(out, origin) {
			out = append(out, origin)
		}
	}
	return out
}

// Headers returns the header set the configuration produces.
func (cfg SecurityHeadersConfig) Headers() http.Header {
	h := http.Header{}
	set := func(key, value string) {
		if value != "" {
			h.Set(key, value)
		}
	}

	set("Content-Security-Policy", cfg.CSP.String())
	if !cfg.IsDevelopment && cfg.HSTS > 0 {
		h.Set("Strict-Transport-Security",
			"max-age="+strconv.FormatInt(int64(cfg.HSTS/time.Second), 10)+"; includeSubDomains")
	}
	set("X-Frame-Options", cfg.FrameOptions)
	h.Set("X-Content-Type-Options", "nosniff")
	set("Referrer-Policy", cfg.ReferrerPolicy)

	denied := make([]string, 0, len(cfg.DeniedFeatures))
	for _, f := range cfg.DeniedFeatures {
		denied = append(denied, f+"=()")
	}
	set("Permissions-Policy", strings.Join(denied, ", "))
	return h
}

// SecurityHeaders sets the configured headers on every response outside
// ExcludePaths. The header values are computed once.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	headers := cfg.Headers()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			excluded := slices.ContainsFunc(cfg.ExcludePaths, func(prefix string) bool {
				return strings.HasPrefix(r.URL.Path, prefix)
			})
			if !excluded {
				dst := w.Header()
				for k, v := range headers {
					dst[k] = slices.Clone(v)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
