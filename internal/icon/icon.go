// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package icon maps the fixed vocabulary of icon tags used by site content
// to inline SVG markup.
package icon

import (
	"html/template"
	"sort"
	"strings"
)

// Fallback tags used when content names an icon outside the vocabulary.
const (
	ServiceFallback = "Heart"
	ContactFallback = "Phone"
)

// paths holds the inner SVG markup for each tag (24x24 stroke icons).
var paths = map[string]string{
	"Heart":       `<path d="M19 14c1.49-1.46 3-3.21 3-5.5A5.5 5.5 0 0 0 16.5 3c-1.76 0-3 .5-4.5 2-1.5-1.5-2.74-2-4.5-2A5.5 5.5 0 0 0 2 8.5c0 2.3 1.5 4.05 3 5.5l7 7Z"/>`,
	"BookOpen":    `<path d="M2 3h6a4 4 0 0 1 4 4v14a3 3 0 0 0-3-3H2z"/><path d="M22 3h-6a4 4 0 0 0-4 4v14a3 3 0 0 1 3-3h7z"/>`,
	"Sparkles":    `<path d="m12 3-1.9 5.8a2 2 0 0 1-1.3 1.3L3 12l5.8 1.9a2 2 0 0 1 1.3 1.3L12 21l1.9-5.8a2 2 0 0 1 1.3-1.3L21 12l-5.8-1.9a2 2 0 0 1-1.3-1.3Z"/><path d="M5 3v4"/><path d="M19 17v4"/><path d="M3 5h4"/><path d="M17 19h4"/>`,
	"Phone":       `<path d="M22 16.92v3a2 2 0 0 1-2.18 2 19.79 19.79 0 0 1-8.63-3.07 19.5 19.5 0 0 1-6-6 19.79 19.79 0 0 1-3.07-8.67A2 2 0 0 1 4.11 2h3a2 2 0 0 1 2 1.72c.13.96.36 1.9.7 2.81a2 2 0 0 1-.45 2.11L8.09 9.91a16 16 0 0 0 6 6l1.27-1.27a2 2 0 0 1 2.11-.45c.91.34 1.85.57 2.81.7A2 2 0 0 1 22 16.92z"/>`,
	"Mail":        `<rect width="20" height="16" x="2" y="4" rx="2"/><path d="m22 7-8.97 5.7a1.94 1.94 0 0 1-2.06 0L2 7"/>`,
	"MapPin":      `<path d="M20 10c0 6-8 12-8 12s-8-6-8-12a8 8 0 0 1 16 0Z"/><circle cx="12" cy="10" r="3"/>`,
	"Clock":       `<circle cx="12" cy="12" r="10"/><polyline points="12 6 12 12 16 14"/>`,
	"Check":       `<path d="M20 6 9 17l-5-5"/>`,
	"Star":        `<polygon points="12 2 15.09 8.26 22 9.27 17 14.14 18.18 21.02 12 17.77 5.82 21.02 7 14.14 2 9.27 8.91 8.26 12 2"/>`,
	"Users":       `<path d="M16 21v-2a4 4 0 0 0-4-4H6a4 4 0 0 0-4 4v2"/><circle cx="9" cy="7" r="4"/><path d="M22 21v-2a4 4 0 0 0-3-3.87"/><path d="M16 3.13a4 4 0 0 1 0 7.75"/>`,
	"Calendar":    `<rect width="18" height="18" x="3" y="4" rx="2"/><path d="M16 2v4"/><path d="M8 2v4"/><path d="M3 10h18"/>`,
	"Menu":        `<path d="M4 6h16"/><path d="M4 12h16"/><path d="M4 18h16"/>`,
	"X":           `<path d="M18 6 6 18"/><path d="m6 6 12 12"/>`,
	"ChevronDown": `<path d="m6 9 6 6 6-6"/>`,
	"Quote":       `<path d="M3 21c3 0 7-1 7-8V5c0-1.25-.76-2.02-2-2H4c-1.25 0-2 .75-2 1.97V11c0 1.25.75 2 2 2 1 0 1 0 1 1v1c0 1-1 2-2 2s-1 .01-1 1.03V20c0 1 0 1 1 1z"/><path d="M15 21c3 0 7-1 7-8V5c0-1.25-.76-2.02-2-2h-4c-1.25 0-2 .75-2 1.97V11c0 1.25.75 2 2 2h.75c0 2.25.25 4-2.75 4v3c0 1 0 1 1 1z"/>`,
}

// Has reports whether tag is part of the vocabulary.
func Has(tag string) bool {
	_, ok := paths[tag]
	return ok
}

// Tags returns the vocabulary in sorted order.
func Tags() []string {
	tags := make([]string, 0, len(paths))
	for t := range paths {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Resolve returns tag when it is known and fallback otherwise.
func Resolve(tag, fallback string) string {
	if Has(tag) {
		return tag
	}
	return fallback
}

// SVG renders tag as a decorative inline SVG. Unknown tags render the fallback;
// if the fallback is unknown too, the result is empty.
func SVG(tag, fallback, class string) template.HTML {
	name := Resolve(tag, fallback)
	inner, ok := paths[name]
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true" focusable="false" class="icon icon-`)
	sb.WriteString(strings.ToLower(name))
	if class != "" {
		sb.WriteString(" ")
		sb.WriteString(template.HTMLEscapeString(class))
	}
	sb.WriteString(`" data-icon="`)
	sb.WriteString(name)
	sb.WriteString(`">`)
	sb.WriteString(inner)
	sb.WriteString(`</svg>`)

	return template.HTML(sb.String()) //nolint:gosec // markup comes from the static table above
}
