// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package theme loads the site's page templates and static assets and
// renders pages with them.
//
// A theme directory looks like:
//
//	theme.json
//	templates/layouts/base.html   executes {{template "content" .}}
//	templates/partials/*.html     named by file name ("nav.html")
//	templates/pages/*.html        each defines "content"
//	static/...                    served under /static
package theme

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
)

const (
	baseLayout = "layouts/base.html"

	// SourceEmbedded marks a theme compiled into the binary.
	SourceEmbedded = "embedded"
)

// Config is the theme.json manifest.
type Config struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Author      string `json:"author"`
	Description string `json:"description"`
	// Pages maps a page name to its file when they differ,
	// e.g. "home": "pages/landing.html".
	Pages    map[string]string `json:"templates"`
	Settings []Setting         `json:"settings"`
}

// Setting is a presentation option with a default, such as a brand color.
// The content record overrides it when it sets the same value.
type Setting struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Type    string   `json:"type"` // color, select, text
	Default string   `json:"default"`
	Options []string `json:"options,omitempty"`
}

// Theme is a loaded theme. Every page is compiled into its own template set
// when the theme loads, so rendering never clones or parses and is safe for
// concurrent use.
type Theme struct {
	Name   string // directory name
	Source string // SourceEmbedded or the directory the theme was read from
	Config Config
	Static fs.FS // rooted at static/

	pages    map[string]*template.Template // keyed by "pages/<file>"
	partials *template.Template
}

// Embedded reports whether the theme was compiled into the binary.
func (t *Theme) Embedded() bool { return t.Source == SourceEmbedded }

// Default returns the default value of a setting, or "" when the theme has none.
func (t *Theme) Default(key string) string {
	for _, s := range t.Config.Settings {
		if s.Key == key {
			return s.Default
		}
	}
	return ""
}

// HasPage reports whether page can be rendered.
func (t *Theme) HasPage(page string) bool {
	_, ok := t.pages[t.pageFile(page)]
	return ok
}

// HasPartial reports whether the named partial exists.
func (t *Theme) HasPartial(name string) bool {
	return t.partials != nil && t.partials.Lookup(name) != nil
}

// pageFile resolves "home", "home.html" or "pages/home.html" to the page's
// file key, honoring the manifest's page map.
func (t *Theme) pageFile(page string) string {
	if file, ok := t.Config.Pages[page]; ok {
		return file
	}
	name := strings.TrimSuffix(strings.TrimPrefix(page, "pages/"), ".html")
	return "pages/" + name + ".html"
}

// RenderPage renders page inside the base layout. Whitespace-only lines are
// dropped from the output.
func (t *Theme) RenderPage(w io.Writer, page string, data any) error {
	set, ok := t.pages[t.pageFile(page)]
	if !ok {
		return fmt.Errorf("theme %s has no page %q", t.Name, page)
	}

	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, baseLayout, data); err != nil {
		return fmt.Errorf("executing %s: %w", page, err)
	}
	_, err := w.Write(compact(buf.Bytes()))
	return err
}

// RenderPartial renders one partial, e.g. "booking-modal.html". The live
// channel uses it to swap fragments into a loaded page.
func (t *Theme) RenderPartial(w io.Writer, name string, data any) error {
	if !t.HasPartial(name) {
		return fmt.Errorf("theme %s has no partial %q", t.Name, name)
	}

	var buf bytes.Buffer
	if err := t.partials.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("executing %s: %w", name, err)
	}
	_, err := w.Write(compact(buf.Bytes()))
	return err
}

// compact drops whitespace-only lines and normalizes CRLF to LF. Template
// actions on their own lines otherwise leave runs of blank lines behind.
func compact(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for line := range bytes.Lines(b) {
		text := bytes.TrimRight(line, "\r\n")
		if len(bytes.TrimSpace(text)) == 0 {
			continue
		}
		out = append(out, text...)
		if len(text) < len(line) {
			out = append(out, '\n')
		}
	}
	return out
}
