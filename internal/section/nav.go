// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package section

import "github.com/olegiv/counsel-site/internal/content"

// Nav is the fixed header.
type Nav struct {
	Logo        Logo
	Links       []NavLink
	Phone       string
	TelLink     string
	Book        Trigger
	MenuTitle   string
	ToggleLabel string
	CloseLabel  string
	SkipLabel   string
	Threshold   int
	Offset      int
}

// NavLink is an in-page anchor link.
type NavLink struct {
	Label   string
	Section string
	Href    string
}

// Logo is the brand mark in one of the three presentation modes.
type Logo struct {
	Mode          content.LogoMode
	Text          string
	Initial       string
	ImagePath     string
	TextImagePath string
	Alt           string
	ShowBadge     bool
	ShowImage     bool
	ShowText      bool
}

// NavFor builds the header view.
func NavFor(rec *content.Record) Nav {
	links := make([]NavLink, 0, len(rec.Navigation.Links))
	for _, l := range rec.Navigation.Links {
		links = append(links, NavLink{Label: l.Label, Section: l.Section, Href: "#" + l.Section})
	}

	return Nav{
		Logo:        LogoFor(rec.Branding.Logo),
		Links:       links,
		Phone:       rec.Metadata.Phone,
		TelLink:     rec.Metadata.TelLink(),
		Book:        trigger(rec, rec.Navigation.CTA, SourceNav, ""),
		MenuTitle:   rec.Navigation.MenuTitle,
		ToggleLabel: rec.Navigation.ToggleLabel,
		CloseLabel:  rec.Navigation.CloseLabel,
		SkipLabel:   rec.Navigation.SkipLabel,
		Threshold:   ScrollThreshold,
		Offset:      ScrollOffset,
	}
}

// LogoFor resolves which parts of the logo render for the configured mode.
func LogoFor(l content.Logo) Logo {
	v := Logo{
		Mode:          l.Mode,
		Text:          l.Text,
		Initial:       content.Initial(l.Text),
		ImagePath:     l.ImagePath,
		TextImagePath: l.TextImagePath,
		Alt:           l.Alt,
	}

	switch l.Mode {
	case content.LogoImage:
		v.ShowImage = true
	case content.LogoBoth:
		v.ShowImage = true
		v.ShowText = true
	default:
		v.ShowBadge = true
		v.ShowText = true
	}
	return v
}
