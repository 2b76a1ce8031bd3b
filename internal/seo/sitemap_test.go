// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"encoding/xml"
	"strings"
	"testing"
	"time"
)

func TestBuildSitemap(t *testing.T) {
	revised := time.Date(2024, time.October, 24, 0, 0, 0, 0, time.UTC)
	deployed := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.FixedZone("EST", -5*3600))

	data, err := BuildSitemap("https://shaikhcounseling.com/",
		LandingEntry(deployed),
		PolicyEntry("/privacy", revised),
		PolicyEntry("cancellation", time.Time{}),
	)
	if err != nil {
		t.Fatalf("BuildSitemap() error = %v", err)
	}

	out := string(data)
	if !strings.HasPrefix(out, xml.Header) {
		t.Error("missing XML header")
	}
	if !strings.Contains(out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`) {
		t.Errorf("missing namespace in\n%s", out)
	}

	var doc urlset
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := []urlTag{
		{Loc: "https://shaikhcounseling.com/", LastMod: "2026-03-14T14:30:00Z", ChangeFreq: "weekly", Priority: "1.0"},
		{Loc: "https://shaikhcounseling.com/privacy", LastMod: "2024-10-24T00:00:00Z", ChangeFreq: "yearly", Priority: "0.3"},
		{Loc: "https://shaikhcounseling.com/cancellation", ChangeFreq: "yearly", Priority: "0.3"},
	}
	if len(doc.URLs) != len(want) {
		t.Fatalf("got %d urls, want %d", len(doc.URLs), len(want))
	}
	for i := range want {
		if doc.URLs[i] != want[i] {
			t.Errorf("url %d = %+v, want %+v", i, doc.URLs[i], want[i])
		}
	}
}

func TestBuildSitemapOmitsEmptyFields(t *testing.T) {
	data, err := BuildSitemap("https://example.com", SitemapEntry{Path: "/faq"})
	if err != nil {
		t.Fatalf("BuildSitemap() error = %v", err)
	}
	out := string(data)
	for _, tag := range []string{"<lastmod>", "<changefreq>", "<priority>"} {
		if strings.Contains(out, tag) {
			t.Errorf("unexpected %s in\n%s", tag, out)
		}
	}
}
