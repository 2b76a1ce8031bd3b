// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package section

import (
	"html/template"

	"github.com/olegiv/counsel-site/internal/content"
	"github.com/olegiv/counsel-site/internal/icon"
)

// Hero is the top-of-page section.
type Hero struct {
	Badge       content.Badge
	Headline    string
	Highlight   string
	Subheadline string
	Book        Trigger
	Explore     ScrollLink
	Stats       []StatView
	Image       ImageView
	SiteName    string
	Animation   Animation
}

// ScrollLink scrolls to a section with the header offset applied.
type ScrollLink struct {
	Label   string
	Section string
	Href    string
}

// StatView is one hero figure. Icon is empty when the stat has none.
type StatView struct {
	Value string
	Label string
	Icon  template.HTML
}

// HeroFor builds the hero view.
func HeroFor(rec *content.Record) Hero {
	h := rec.Hero

	stats := make([]StatView, 0, len(h.Stats))
	for _, s := range h.Stats {
		sv := StatView{Value: s.Value, Label: s.Label}
		if s.Icon != "" {
			sv.Icon = icon.SVG(s.Icon, "", "stat-icon")
		}
		stats = append(stats, sv)
	}

	return Hero{
		Badge:       h.Badge,
		Headline:    h.Headline,
		Highlight:   h.Highlight,
		Subheadline: h.Subheadline,
		Book:        trigger(rec, h.PrimaryCTA, SourceHero, ""),
		Explore:     ScrollLink{Label: h.SecondaryCTA, Section: "services", Href: "#services"},
		Stats:       stats,
		Image:       imageView(h.Image, rec.Metadata.SiteName),
		SiteName:    rec.Metadata.SiteName,
		Animation:   Animation{Direction: "up"},
	}
}
