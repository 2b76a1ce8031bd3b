// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package section builds the view models rendered by the theme partials.
// Every builder is a pure function of the content record. The only copy
// here is the fixed wording of the testimonials aggregate.
package section

import (
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/counsel-site/internal/content"
)

// Interaction constants shared by the server-side components and the markup.
const (
	// ScrollThreshold is the vertical offset past which the header switches style.
	ScrollThreshold = 20
	// ScrollOffset clears the fixed header when scrolling to a section.
	ScrollOffset = 80
	// MaxStars is the number of glyphs in every star row.
	MaxStars = 5
	// StaggerMS is the entrance delay step between sibling cards.
	StaggerMS = 100
)

// Trigger sources, one per section that can open the booking modal.
const (
	SourceNav      = "nav"
	SourceHero     = "hero"
	SourceServices = "services"
	SourceContact  = "contact"
)

// Animation holds the cosmetic entrance parameters of an element.
type Animation struct {
	Direction string // up, left, right
	DelayMS   int
}

// Trigger is a control that opens the booking modal.
type Trigger struct {
	Label     string
	Source    string
	EventType string
	// Href opens the provider page directly when scripts are unavailable.
	Href string
}

// ImageView is a photo or a first-letter placeholder badge.
type ImageView struct {
	Placeholder bool
	Path        string
	Alt         string
	Initial     string
	Line        string
	Caption     content.Caption
}

// Star is one glyph of a rating row.
type Star struct {
	Filled bool
}

// StarRow is a rendered rating: its glyphs and the accessible name that
// states the rating.
type StarRow struct {
	Rating int
	Glyphs []Star
	Label  string
}

// StarRowFor builds the row for rating. format is the record's stars label;
// {rating} and {max} are substituted.
func StarRowFor(rating int, format string) StarRow {
	rating = max(0, min(rating, MaxStars))
	label := strings.NewReplacer(
		"{rating}", strconv.Itoa(rating),
		"{max}", strconv.Itoa(MaxStars),
	).Replace(format)
	return StarRow{Rating: rating, Glyphs: Stars(rating), Label: label}
}

// Page aggregates every section of the home page.
type Page struct {
	Nav          Nav
	Hero         Hero
	Services     Services
	About        About
	Testimonials Testimonials
	Contact      Contact
	Booking      Booking
}

// Build assembles the home page view. now supplies the copyright year.
func Build(rec *content.Record, now time.Time) (Page, error) {
	booking, err := BookingFor(rec, "")
	if err != nil {
		return Page{}, err
	}

	return Page{
		Nav:          NavFor(rec),
		Hero:         HeroFor(rec),
		Services:     ServicesFor(rec, ""),
		About:        AboutFor(rec),
		Testimonials: TestimonialsFor(rec),
		Contact:      ContactFor(rec, now.Year()),
		Booking:      booking,
	}, nil
}

func trigger(rec *content.Record, label, source, eventType string) Trigger {
	return Trigger{
		Label:     label,
		Source:    source,
		EventType: eventType,
		Href:      rec.Booking.PageURL(eventType),
	}
}

func imageView(img content.Image, name string) ImageView {
	return ImageView{
		Placeholder: img.IsPlaceholder(),
		Path:        img.Path,
		Alt:         img.Alt,
		Initial:     content.Initial(name),
		Line:        img.Placeholder,
		Caption:     img.Caption,
	}
}

// Stars returns exactly MaxStars glyphs with the first rating of them filled.
// Ratings outside the range are clamped.
func Stars(rating int) []Star {
	rating = max(0, min(rating, MaxStars))
	stars := make([]Star, MaxStars)
	for i := range stars {
		stars[i].Filled = i < rating
	}
	return stars
}
