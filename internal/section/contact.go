// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package section

import (
	"html/template"
	"strconv"

	"github.com/olegiv/counsel-site/internal/content"
	"github.com/olegiv/counsel-site/internal/icon"
)

// Contact is the contact section with the page footer.
type Contact struct {
	Heading     string
	Subheading  string
	Methods     []MethodView
	HoursTitle  string
	Hours       []content.Hours
	HoursIcon   template.HTML
	CTA         CTAView
	Footer      Footer
	MethodsAnim Animation
	HoursAnim   Animation
}

// MethodView is one contact entry. Link is empty for non-interactive entries.
type MethodView struct {
	Icon      template.HTML
	Label     string
	Value     string
	SubValue  string
	Link      string
	Animation Animation
}

// Footer is the bottom line of the page.
type Footer struct {
	Copyright string
	Tagline   string
	Links     []content.Link
}

// ContactFor builds the contact view. year feeds the copyright line.
func ContactFor(rec *content.Record, year int) Contact {
	c := rec.Contact

	methods := make([]MethodView, 0, len(c.Methods))
	for i, m := range c.Methods {
		methods = append(methods, MethodView{
			Icon:      icon.SVG(m.Icon, icon.ContactFallback, "method-icon"),
			Label:     m.Label,
			Value:     m.Value,
			SubValue:  m.SubValue,
			Link:      m.Link,
			Animation: Animation{Direction: "left", DelayMS: i * StaggerMS},
		})
	}

	return Contact{
		Heading:    c.Heading,
		Subheading: c.Subheading,
		Methods:    methods,
		HoursTitle: c.OfficeHours.Heading,
		Hours:      c.OfficeHours.Schedule,
		HoursIcon:  icon.SVG("Clock", "", "hours-icon"),
		CTA: CTAView{
			Heading: c.CTA.Heading,
			Text:    c.CTA.Text,
			Book:    trigger(rec, c.CTA.Button, SourceContact, ""),
		},
		Footer:      FooterFor(rec, year),
		MethodsAnim: Animation{Direction: "left"},
		HoursAnim:   Animation{Direction: "right"},
	}
}

// FooterFor builds the footer shared by the home and legal pages.
func FooterFor(rec *content.Record, year int) Footer {
	return Footer{
		Copyright: Copyright(year, rec.Metadata.SiteName, rec.Footer.Copyright),
		Tagline:   rec.Footer.Tagline,
		Links:     rec.Footer.Links,
	}
}

// Copyright renders "© 2026 Site Name. All rights reserved."
func Copyright(year int, siteName, notice string) string {
	line := "© " + strconv.Itoa(year) + " " + siteName + "."
	if notice != "" {
		line += " " + notice
	}
	return line
}
