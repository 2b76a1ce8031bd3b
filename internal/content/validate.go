// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/olegiv/counsel-site/internal/icon"
	"github.com/olegiv/counsel-site/internal/util"
)

// ErrInvalid wraps every validation problem found in a record.
var ErrInvalid = errors.New("invalid content")

// Rating bounds for testimonials.
const (
	MinRating = 0
	MaxRating = 5
)

// Hero stats row bounds.
const (
	minStats = 2
	maxStats = 4
)

var (
	durationRegex = regexp.MustCompile(`^\d+ min$`)
	colorRegex    = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// linkSchemes are the schemes a contact or footer link may use. Relative
// paths and fragments are always allowed.
var linkSchemes = []string{"http", "https", "mailto", "tel"}

func validLink(link string) bool {
	if strings.HasPrefix(link, "/") || strings.HasPrefix(link, "#") {
		return !strings.HasPrefix(link, "//")
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return slices.Contains(linkSchemes, strings.ToLower(u.Scheme))
}

// Validate checks the record invariants and reports every problem at once.
func (r *Record) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if r.Metadata.SiteName == "" {
		fail("metadata.site_name is required")
	}
	if r.Metadata.Phone == "" {
		fail("metadata.phone is required")
	}
	if r.Metadata.Email == "" {
		fail("metadata.email is required")
	}

	switch r.Branding.Logo.Mode {
	case LogoText, LogoImage, LogoBoth:
	default:
		fail("branding.logo.mode %q must be one of text, image, both", r.Branding.Logo.Mode)
	}
	if r.Branding.Logo.Mode != LogoText && r.Branding.Logo.ImagePath == "" {
		fail("branding.logo.image_path is required for mode %q", r.Branding.Logo.Mode)
	}

	for field, c := range map[string]string{
		"primary":      r.Branding.Colors.Primary,
		"primary_dark": r.Branding.Colors.PrimaryDark,
		"accent":       r.Branding.Colors.Accent,
		"accent_light": r.Branding.Colors.AccentLight,
	} {
		if c != "" && !colorRegex.MatchString(c) {
			fail("branding.colors.%s %q must be a hex color", field, c)
		}
	}

	for i, l := range r.Navigation.Links {
		if !slices.Contains(SectionIDs, l.Section) {
			fail("navigation.links[%d]: unknown section %q", i, l.Section)
		}
	}

	if n := len(r.Hero.Stats); n < minStats || n > maxStats {
		fail("hero.stats: need %d to %d entries, got %d", minStats, maxStats, n)
	}
	checkImage := func(field string, img Image) {
		switch img.Kind {
		case "", ImagePhoto, ImagePlaceholder:
		default:
			fail("%s.kind %q must be photo or placeholder", field, img.Kind)
		}
	}
	checkImage("hero.image", r.Hero.Image)
	checkImage("about.photo", r.About.Photo)

	seen := make(map[string]bool, len(r.Services.Items))
	for i, s := range r.Services.Items {
		switch {
		case s.ID == "":
			fail("services.items[%d]: id is required", i)
		case !util.IsValidSlug(s.ID):
			fail("services.items[%d]: id %q is not a valid slug", i, s.ID)
		case seen[s.ID]:
			fail("services.items[%d]: duplicate id %q", i, s.ID)
		}
		seen[s.ID] = true

		if s.Title == "" {
			fail("services.items[%d]: title is required", i)
		}
		if s.Price < 0 {
			fail("services.items[%d]: price must not be negative", i)
		}
		if !durationRegex.MatchString(s.Duration) {
			fail("services.items[%d]: duration %q must look like \"60 min\"", i, s.Duration)
		}
		if s.EventType != "" && !util.IsValidSlug(s.EventType) {
			fail("services.items[%d]: event_type %q is not a valid slug", i, s.EventType)
		}
	}

	seen = make(map[string]bool, len(r.Testimonials.Items))
	for i, t := range r.Testimonials.Items {
		if t.ID != "" && seen[t.ID] {
			fail("testimonials.items[%d]: duplicate id %q", i, t.ID)
		}
		seen[t.ID] = true
		if t.Name == "" {
			fail("testimonials.items[%d]: name is required", i)
		}
		if t.Rating < MinRating || t.Rating > MaxRating {
			fail("testimonials.items[%d]: rating %d out of range %d..%d", i, t.Rating, MinRating, MaxRating)
		}
	}

	for i, m := range r.Contact.Methods {
		if m.Link != "" && !validLink(m.Link) {
			fail("contact.methods[%d]: link %q must be a relative, http(s), mailto or tel link", i, m.Link)
		}
	}
	for i, l := range r.Footer.Links {
		if !validLink(l.Href) {
			fail("footer.links[%d]: href %q must be a relative, http(s), mailto or tel link", i, l.Href)
		}
	}

	if r.About.Quote != nil && r.About.Quote.Text == "" {
		fail("about.quote.text is required when a quote is present")
	}

	if r.Booking.Account == "" {
		fail("booking.account is required")
	}
	if !util.IsValidSlug(r.Booking.EventType) {
		fail("booking.event_type %q is not a valid slug", r.Booking.EventType)
	}

	for _, name := range []string{"privacy", "terms"} {
		doc, _ := r.document(name)
		if doc.Source == "" {
			continue
		}
		if r.docs == nil {
			fail("legal.%s: no document source available", name)
			continue
		}
		if _, err := fs.Stat(r.docs, doc.Source); err != nil {
			fail("legal.%s: %w", name, err)
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// Warnings reports problems that do not stop the site from rendering,
// such as icon tags that will render with the section's fallback icon.
func (r *Record) Warnings() []string {
	var warnings []string
	for _, s := range r.Services.Items {
		if !icon.Has(s.Icon) {
			warnings = append(warnings, fmt.Sprintf("service %q: unknown icon %q, using %s", s.ID, s.Icon, icon.ServiceFallback))
		}
	}
	for _, m := range r.Contact.Methods {
		if !icon.Has(m.Icon) {
			warnings = append(warnings, fmt.Sprintf("contact method %q: unknown icon %q, using %s", m.Label, m.Icon, icon.ContactFallback))
		}
	}
	for _, s := range r.Hero.Stats {
		if s.Icon != "" && !icon.Has(s.Icon) {
			warnings = append(warnings, fmt.Sprintf("hero stat %q: unknown icon %q, icon omitted", s.Label, s.Icon))
		}
	}
	return warnings
}
