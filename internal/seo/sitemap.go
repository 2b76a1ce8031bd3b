// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapEntry is one page of the site. The landing page is the entry
// with Path "/".
type SitemapEntry struct {
	Path       string
	LastMod    time.Time // zero omits <lastmod>
	ChangeFreq string    // "weekly", "yearly"...
	Priority   float64   // 0 omits <priority>
}

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []urlTag `xml:"url"`
}

type urlTag struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// LandingEntry lists the single-page site itself.
func LandingEntry(lastMod time.Time) SitemapEntry {
	return SitemapEntry{Path: "/", LastMod: lastMod, ChangeFreq: "weekly", Priority: 1}
}

// PolicyEntry lists a legal page, which rarely changes.
func PolicyEntry(path string, lastMod time.Time) SitemapEntry {
	return SitemapEntry{Path: path, LastMod: lastMod, ChangeFreq: "yearly", Priority: 0.3}
}

// BuildSitemap renders entries as a sitemap.xml document rooted at siteURL.
func BuildSitemap(siteURL string, entries ...SitemapEntry) ([]byte, error) {
	base := strings.TrimRight(siteURL, "/")
	doc := urlset{XMLNS: sitemapNS, URLs: make([]urlTag, 0, len(entries))}

	for _, e := range entries {
		tag := urlTag{Loc: base + "/" + strings.TrimLeft(e.Path, "/"), ChangeFreq: e.ChangeFreq}
		if !e.LastMod.IsZero() {
			tag.LastMod = e.LastMod.UTC().Format(time.RFC3339)
		}
		if e.Priority > 0 {
			tag.Priority = strconv.FormatFloat(e.Priority, 'f', 1, 64)
		}
		doc.URLs = append(doc.URLs, tag)
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
