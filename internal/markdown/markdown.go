// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package markdown renders the policy documents to sanitized HTML.
package markdown

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strconv"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/olegiv/counsel-site/internal/util"
)

// Heading is one table-of-contents entry.
type Heading struct {
	Level int
	Text  string
	ID    string
}

// Document is a rendered markdown source.
type Document struct {
	HTML     template.HTML
	Headings []Heading
}

// Renderer converts markdown with GFM tables and anchor ids on headings.
// It is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// anchorPattern restricts sanitized heading ids to generated anchors.
var anchorPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// New creates a Renderer.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("id").Matching(anchorPattern).OnElements("h1", "h2", "h3", "h4")

	return &Renderer{md: md, policy: policy}
}

// Render converts src. The returned HTML has passed the sanitizer, so
// operator-edited files cannot inject script into the page.
func (r *Renderer) Render(src []byte) (Document, error) {
	ctx := parser.NewContext(parser.WithIDs(newAnchorIDs()))
	root := r.md.Parser().Parse(text.NewReader(src), parser.WithContext(ctx))

	var headings []Heading
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		heading := Heading{Level: h.Level, Text: plainText(h, src)}
		if id, ok := h.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				heading.ID = string(b)
			}
		}
		headings = append(headings, heading)
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return Document{}, fmt.Errorf("collecting headings: %w", err)
	}

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, src, root); err != nil {
		return Document{}, fmt.Errorf("rendering markdown: %w", err)
	}

	return Document{
		HTML:     template.HTML(r.policy.SanitizeBytes(buf.Bytes())), //nolint:gosec // sanitized above
		Headings: headings,
	}, nil
}

// plainText concatenates the text segments below n.
func plainText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
			continue
		}
		buf.WriteString(plainText(c, src))
	}
	return buf.String()
}

// anchorIDs generates transliterated, unique heading ids.
type anchorIDs struct {
	seen map[string]int
}

func newAnchorIDs() *anchorIDs {
	return &anchorIDs{seen: make(map[string]int)}
}

// Generate implements parser.IDs.
func (a *anchorIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	id := util.Anchor(string(value), "section")
	n := a.seen[id]
	a.seen[id] = n + 1
	if n > 0 {
		id += "-" + strconv.Itoa(n)
	}
	return []byte(id)
}

// Put implements parser.IDs.
func (a *anchorIDs) Put(value []byte) {
	a.seen[string(value)]++
}
