// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/xml"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRobots(t *testing.T) {
	t.Run("production", func(t *testing.T) {
		s := newTestSite(t, nil)
		rec := get(t, s.Robots, RouteRobots)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
		body := rec.Body.String()
		assert.Contains(t, body, "Disallow: /live\n")
		assert.Contains(t, body, "Allow: /\n")
		assert.Contains(t, body, "Sitemap: https://shaikhcounseling.com/sitemap.xml")
	})

	t.Run("crawling disallowed", func(t *testing.T) {
		s := NewSite(testRecord(t), testThemes(t), nil, testLogger(), Options{DisallowCrawling: true})
		body := get(t, s.Robots, RouteRobots).Body.String()

		assert.Contains(t, body, "Disallow: /\n")
		assert.NotContains(t, body, "Sitemap:")
	})

	t.Run("blocked crawlers", func(t *testing.T) {
		s := NewSite(testRecord(t), testThemes(t), nil, testLogger(), Options{BlockedCrawlers: []string{"GPTBot"}})
		body := get(t, s.Robots, RouteRobots).Body.String()

		assert.Contains(t, body, "User-agent: GPTBot\nDisallow: /\n")
		assert.Contains(t, body, "Allow: /\n")
	})
}

func TestSitemap(t *testing.T) {
	s := newTestSite(t, nil)
	rec := get(t, s.Sitemap, RouteSitemap)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/xml; charset=utf-8", rec.Header().Get("Content-Type"))

	var doc struct {
		URLs []struct {
			Loc     string `xml:"loc"`
			LastMod string `xml:"lastmod"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.URLs, 4)

	assert.Equal(t, "https://shaikhcounseling.com/", doc.URLs[0].Loc)
	assert.Equal(t, testNow.Format(time.RFC3339), doc.URLs[0].LastMod)
	assert.Equal(t, "https://shaikhcounseling.com/privacy", doc.URLs[1].Loc)
	assert.Equal(t, "2024-10-24T00:00:00Z", doc.URLs[1].LastMod)
	assert.Equal(t, "https://shaikhcounseling.com/terms", doc.URLs[2].Loc)
	assert.Equal(t, "https://shaikhcounseling.com/cancellation", doc.URLs[3].Loc)
	assert.Empty(t, doc.URLs[3].LastMod)
}

func TestDocumentDate(t *testing.T) {
	s := newTestSite(t, nil)

	assert.Equal(t, time.Date(2024, time.October, 24, 0, 0, 0, 0, time.UTC), s.documentDate(DocPrivacy))
	assert.True(t, s.documentDate(DocCancellation).IsZero())
	assert.True(t, s.documentDate("missing").IsZero())
}

func TestSecurityTxt(t *testing.T) {
	s := newTestSite(t, nil)
	rec := get(t, s.SecurityTxt, RouteSecurityTxt)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Contact: mailto:contact@shaikhcounseling.com")
	assert.Contains(t, body, "Canonical: https://shaikhcounseling.com/.well-known/security.txt")
	assert.Contains(t, body, "Policy: https://shaikhcounseling.com/privacy")
	assert.Contains(t, body, "Preferred-Languages: en")
	assert.Contains(t, body, "Expires: ")
}
