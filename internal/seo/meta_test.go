// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func testSite() *SiteConfig {
	return &SiteConfig{
		SiteName:        "Shaikh Counseling",
		SiteURL:         "https://example.com/",
		Title:           "Shaikh Mendez - Islamic Counseling Services",
		SiteDescription: "Professional counseling for marriage and family.",
		Keywords:        []string{"counseling", "marriage counseling"},
		Author:          "Shaikh Mendez",
		DefaultOGImage:  "og-image.jpg",
		TwitterHandle:   "@shaikh",
		Locale:          "en_US",
	}
}

func TestSiteConfigHome(t *testing.T) {
	m := testSite().Home()

	want := Meta{
		Title:         "Shaikh Mendez - Islamic Counseling Services",
		Description:   "Professional counseling for marriage and family.",
		Keywords:      "counseling, marriage counseling",
		Author:        "Shaikh Mendez",
		Canonical:     "https://example.com/",
		Robots:        "index,follow",
		OGTitle:       "Shaikh Mendez - Islamic Counseling Services",
		OGDescription: "Professional counseling for marriage and family.",
		OGImage:       "https://example.com/og-image.jpg",
		OGType:        "website",
		OGSiteName:    "Shaikh Counseling",
		OGURL:         "https://example.com/",
		OGLocale:      "en_US",
		TwitterCard:   "summary_large_image",
		TwitterSite:   "@shaikh",
	}
	if *m != want {
		t.Errorf("Home() =\n%+v\nwant\n%+v", *m, want)
	}
}

func TestSiteConfigHomeTitleFallback(t *testing.T) {
	site := testSite()
	site.Title = ""

	if got := site.Home().Title; got != "Shaikh Counseling" {
		t.Errorf("Title = %q, want the site name", got)
	}
}

func TestSiteConfigPage(t *testing.T) {
	m := testSite().Page(PageData{
		Title:       "Privacy Policy",
		Description: "How we handle your information.",
		Path:        "/privacy",
	})

	if m.Title != "Privacy Policy | Shaikh Counseling" {
		t.Errorf("Title = %q", m.Title)
	}
	if m.OGTitle != "Privacy Policy" {
		t.Errorf("OGTitle = %q", m.OGTitle)
	}
	if m.Canonical != "https://example.com/privacy" || m.OGURL != m.Canonical {
		t.Errorf("Canonical = %q, OGURL = %q", m.Canonical, m.OGURL)
	}
	if m.Robots != "index,follow" {
		t.Errorf("Robots = %q", m.Robots)
	}
}

func TestSiteConfigPageDescription(t *testing.T) {
	site := testSite()

	tests := []struct {
		name string
		page PageData
		want string
	}{
		{"explicit", PageData{Description: "Explicit."}, "Explicit."},
		{"from body", PageData{Body: "<h2>Booking</h2><p>Sessions are booked online &amp; paid ahead.</p>"}, "Booking Sessions are booked online & paid ahead."},
		{"site fallback", PageData{}, site.SiteDescription},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := site.Page(tt.page).Description; got != tt.want {
				t.Errorf("Description = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSiteConfigPageNoIndex(t *testing.T) {
	m := testSite().Page(PageData{Title: "Page Not Found", NoIndex: true})

	if m.Robots != "noindex,follow" {
		t.Errorf("Robots = %q", m.Robots)
	}
	if m.Canonical != "" {
		t.Errorf("Canonical = %q, want none without a path", m.Canonical)
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"<p>Hello <strong>world</strong></p>", 50, "Hello world"},
		{"<ul><li>One</li><li>Two</li></ul>", 50, "One Two"},
		{"<script>alert(1)</script><p>Safe</p>", 50, "Safe"},
		{"We meet weekly in a calm and private office", 20, "We meet weekly in a…"},
		{"Averyveryverylongwordwithoutspaces", 10, "Averyveryv…"},
		{"", 10, ""},
	}
	for _, tt := range tests {
		if got := Summarize(tt.in, tt.limit); got != tt.want {
			t.Errorf("Summarize(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestSummarizeCountsRunes(t *testing.T) {
	got := Summarize(strings.Repeat("é", 200), descriptionLimit)
	if n := utf8.RuneCountInString(got); n != descriptionLimit+1 {
		t.Errorf("got %d runes, want %d plus the ellipsis", n, descriptionLimit)
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		ref, base, want string
	}{
		{"/og-image.jpg", "https://example.com", "https://example.com/og-image.jpg"},
		{"og-image.jpg", "https://example.com/", "https://example.com/og-image.jpg"},
		{"/privacy#rights", "https://example.com", "https://example.com/privacy#rights"},
		{"https://cdn.example.com/a.jpg", "https://example.com", "https://cdn.example.com/a.jpg"},
		{"", "https://example.com", ""},
	}
	for _, tt := range tests {
		if got := absoluteURL(tt.ref, tt.base); got != tt.want {
			t.Errorf("absoluteURL(%q, %q) = %q, want %q", tt.ref, tt.base, got, tt.want)
		}
	}
}
