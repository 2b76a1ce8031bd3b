// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds head metadata, structured data, robots.txt,
// sitemap.xml and security.txt for the practice site.
package seo

import (
	"cmp"
	"encoding/json"
	"html"
	"html/template"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// descriptionLimit is the length search engines show in result snippets.
const descriptionLimit = 160

// Meta is rendered by the head-meta template of every page.
type Meta struct {
	Title         string
	Description   string
	Keywords      string
	Author        string
	Canonical     string
	Robots        string // "index,follow" or "noindex,follow"
	OGTitle       string
	OGDescription string
	OGImage       string // absolute
	OGType        string
	OGSiteName    string
	OGURL         string
	OGLocale      string // en_US
	TwitterCard   string
	TwitterSite   string
}

// SiteConfig holds the record fields every page's metadata derives from.
type SiteConfig struct {
	SiteName        string
	SiteURL         string
	Title           string // landing page title
	SiteDescription string
	Keywords        []string
	Author          string
	DefaultOGImage  string
	TwitterHandle   string
	Locale          string
}

// PageData describes a page other than the landing page.
type PageData struct {
	Title       string
	Description string
	Body        string // rendered HTML, used when Description is empty
	Path        string // "/privacy"
	NoIndex     bool
}

// Home returns the landing page metadata. Title falls back to the site name.
func (c *SiteConfig) Home() *Meta {
	m := c.shared()
	m.Title = cmp.Or(c.Title, c.SiteName)
	m.OGTitle = m.Title
	m.Description = c.SiteDescription
	m.OGDescription = m.Description
	m.Canonical = c.absolute("/")
	m.OGURL = m.Canonical
	return m
}

// Page returns metadata for a secondary page. The title is suffixed with the
// site name; the description comes from p.Description, then the first
// sentences of p.Body, then the site description.
func (c *SiteConfig) Page(p PageData) *Meta {
	m := c.shared()
	m.OGTitle = cmp.Or(p.Title, c.SiteName)
	m.Title = m.OGTitle
	if p.Title != "" {
		m.Title += " | " + c.SiteName
	}

	m.Description = p.Description
	if m.Description == "" {
		m.Description = Summarize(p.Body, descriptionLimit)
	}
	if m.Description == "" {
		m.Description = c.SiteDescription
	}
	m.OGDescription = m.Description

	if p.Path != "" {
		m.Canonical = c.absolute(p.Path)
		m.OGURL = m.Canonical
	}
	if p.NoIndex {
		m.Robots = "noindex,follow"
	}
	return m
}

func (c *SiteConfig) shared() *Meta {
	return &Meta{
		Keywords:    strings.Join(c.Keywords, ", "),
		Author:      c.Author,
		Robots:      "index,follow",
		OGType:      "website",
		OGSiteName:  c.SiteName,
		OGImage:     c.absolute(c.DefaultOGImage),
		OGLocale:    c.Locale,
		TwitterCard: "summary_large_image",
		TwitterSite: c.TwitterHandle,
	}
}

func (c *SiteConfig) absolute(ref string) string {
	return absoluteURL(ref, c.SiteURL)
}

var textOnly = bluemonday.StrictPolicy()

// Summarize reduces rendered HTML to plain text of at most limit runes,
// cut at a word boundary and marked with an ellipsis when shortened.
func Summarize(htmlBody string, limit int) string {
	// Block tags would otherwise glue adjacent words together.
	spaced := strings.ReplaceAll(htmlBody, "<", " <")
	text := strings.Join(strings.Fields(html.UnescapeString(textOnly.Sanitize(spaced))), " ")
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:limit])
	if i := strings.LastIndexByte(cut, ' '); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// absoluteURL resolves ref against base. Absolute refs are kept.
func absoluteURL(ref, base string) string {
	if ref == "" {
		return ""
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	if r.IsAbs() {
		return ref
	}
	b, err := url.Parse(strings.TrimRight(base, "/") + "/")
	if err != nil {
		return ""
	}
	if !strings.HasPrefix(r.Path, "/") {
		r.Path = "/" + r.Path
	}
	return b.ResolveReference(r).String()
}

// marshalJSONLD encodes structured data for a <script type="application/ld+json"> block.
func marshalJSONLD(v any) template.JS {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return ""
	}
	return template.JS(data)
}
