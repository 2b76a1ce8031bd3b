// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package section

import (
	"fmt"

	"github.com/olegiv/counsel-site/internal/content"
)

// ScriptID is the element id of the injected provider script.
const ScriptID = "cal-embed-script"

// Booking is the modal content for one open session.
type Booking struct {
	Title         string
	Subtitle      string
	EventType     string
	CalLink       string
	Config        string
	ScriptURL     string
	ScriptID      string
	PageURL       string
	FallbackLabel string
	CloseLabel    string
	FooterText    string
	Phone         string
	TelLink       string
}

// BookingFor builds the modal view for eventType (empty uses the default event type).
func BookingFor(rec *content.Record, eventType string) (Booking, error) {
	b := rec.Booking

	cfg, err := b.EmbedJSON()
	if err != nil {
		return Booking{}, fmt.Errorf("encoding embed config: %w", err)
	}

	return Booking{
		Title:         b.Title,
		Subtitle:      b.Subtitle,
		EventType:     b.EventTypeFor(eventType),
		CalLink:       b.CalLink(eventType),
		Config:        cfg,
		ScriptURL:     b.ScriptURL,
		ScriptID:      ScriptID,
		PageURL:       b.PageURL(eventType),
		FallbackLabel: b.FallbackLabel,
		CloseLabel:    b.CloseLabel,
		FooterText:    b.FooterText,
		Phone:         rec.Metadata.Phone,
		TelLink:       rec.Metadata.TelLink(),
	}, nil
}
