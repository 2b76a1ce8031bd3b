// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package section

import (
	"html/template"

	"github.com/olegiv/counsel-site/internal/content"
	"github.com/olegiv/counsel-site/internal/icon"
)

// About is the counselor bio section.
type About struct {
	Heading            string
	Greeting           string
	Intro              string
	Bio                string
	Photo              ImageView
	CredentialsHeading string
	Credentials        []string
	Check              template.HTML
	// Quote is nil when the record has no quote; no block renders then.
	Quote *content.Quote
}

// AboutFor builds the about view.
func AboutFor(rec *content.Record) About {
	a := rec.About

	var quote *content.Quote
	if a.Quote != nil && a.Quote.Text != "" {
		q := *a.Quote
		quote = &q
	}

	return About{
		Heading:            a.Heading,
		Greeting:           a.Greeting,
		Intro:              a.Intro,
		Bio:                a.Bio,
		Photo:              imageView(a.Photo, rec.Metadata.CounselorName),
		CredentialsHeading: a.CredentialsHeading,
		Credentials:        a.Credentials,
		Check:              icon.SVG("Check", "", "check-icon"),
		Quote:              quote,
	}
}
