// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/counsel-site/internal/seo"
)

// lastUpdatedLayout is how policy pages write their revision date.
const lastUpdatedLayout = "January 2, 2006"

// Robots handles GET /robots.txt.
func (s *Site) Robots(w http.ResponseWriter, _ *http.Request) {
	policy := seo.RobotsPolicy{
		SiteURL: s.rec.Metadata.URL,
		Staging: s.opts.DisallowCrawling,
		Blocked: s.opts.BlockedCrawlers,
	}
	writeText(w, "text/plain; charset=utf-8", []byte(policy.String()))
}

// Sitemap handles GET /sitemap.xml. It lists the home page and every policy page.
func (s *Site) Sitemap(w http.ResponseWriter, r *http.Request) {
	body, err := seo.BuildSitemap(s.rec.Metadata.URL,
		seo.LandingEntry(s.started),
		seo.PolicyEntry(RoutePrivacy, s.documentDate(DocPrivacy)),
		seo.PolicyEntry(RouteTerms, s.documentDate(DocTerms)),
		seo.PolicyEntry(RouteCancellation, s.documentDate(DocCancellation)),
	)
	if err != nil {
		serverError(w, r, s.logger, "failed to build sitemap", err)
		return
	}
	writeText(w, "application/xml; charset=utf-8", body)
}

// SecurityTxt handles GET /.well-known/security.txt.
func (s *Site) SecurityTxt(w http.ResponseWriter, r *http.Request) {
	base := strings.TrimSuffix(s.rec.Metadata.URL, "/")
	body, err := seo.SecurityTxt{
		Contacts:  []string{s.rec.Metadata.MailLink()},
		Languages: []string{htmlLang(s.rec.SEO.Locale)},
		Canonical: base + RouteSecurityTxt,
		Policy:    base + RoutePrivacy,
	}.Render(s.started)
	if err != nil {
		serverError(w, r, s.logger, "failed to build security.txt", err)
		return
	}
	writeText(w, "text/plain; charset=utf-8", []byte(body))
}

// documentDate parses a policy page's revision date; unparsable dates are omitted.
func (s *Site) documentDate(doc string) time.Time {
	meta, ok := s.rec.Document(doc)
	if !ok || meta.LastUpdated == "" {
		return time.Time{}
	}
	t, err := time.Parse(lastUpdatedLayout, meta.LastUpdated)
	if err != nil {
		return time.Time{}
	}
	return t
}
