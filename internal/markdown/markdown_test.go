// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHeadingsAndAnchors(t *testing.T) {
	src := []byte("Intro paragraph.\n\n## Information we collect\n\n- Name\n- Email\n\n## Confidentiality\n\nText.\n")

	doc, err := New().Render(src)
	require.NoError(t, err)

	html := string(doc.HTML)
	assert.Contains(t, html, `<h2 id="information-we-collect">Information we collect</h2>`)
	assert.Contains(t, html, `<h2 id="confidentiality">`)
	assert.Contains(t, html, "<li>Name</li>")

	require.Len(t, doc.Headings, 2)
	assert.Equal(t, Heading{Level: 2, Text: "Information we collect", ID: "information-we-collect"}, doc.Headings[0])
	assert.Equal(t, "confidentiality", doc.Headings[1].ID)
}

func TestRenderDuplicateHeadings(t *testing.T) {
	doc, err := New().Render([]byte("## Notes\n\n## Notes\n"))
	require.NoError(t, err)

	require.Len(t, doc.Headings, 2)
	assert.Equal(t, "notes", doc.Headings[0].ID)
	assert.Equal(t, "notes-1", doc.Headings[1].ID)
}

func TestRenderTransliteratesAnchors(t *testing.T) {
	doc, err := New().Render([]byte("## Конфиденциальность\n"))
	require.NoError(t, err)

	require.Len(t, doc.Headings, 1)
	assert.Equal(t, "konfidentsialnost", doc.Headings[0].ID)
}

func TestRenderSanitizes(t *testing.T) {
	src := []byte("Hello <script>alert(1)</script> [x](javascript:alert(1))\n\n<img src=x onerror=alert(1)>\n")

	doc, err := New().Render(src)
	require.NoError(t, err)

	html := string(doc.HTML)
	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "javascript:")
	assert.NotContains(t, html, "onerror")
}

func TestRenderTables(t *testing.T) {
	src := []byte("| Notice | Charge |\n|---|---|\n| 24+ hours | None |\n")

	doc, err := New().Render(src)
	require.NoError(t, err)
	assert.Contains(t, string(doc.HTML), "<table>")
	assert.Contains(t, string(doc.HTML), "<td>24+ hours</td>")
}
