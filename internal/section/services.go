// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package section

import (
	"html/template"

	"github.com/olegiv/counsel-site/internal/content"
	"github.com/olegiv/counsel-site/internal/icon"
)

// Services is the services catalog.
type Services struct {
	Heading    string
	Subheading string
	Cards      []ServiceCard
	CTA        CTAView
}

// ServiceCard is one service in the catalog.
type ServiceCard struct {
	ID          string
	Title       string
	Description string
	Detail      string
	Icon        template.HTML
	Price       string
	Duration    string
	ReadMore    string
	Expanded    bool
	Book        Trigger
	Animation   Animation
}

// CTAView is a call-to-action block ending in a booking trigger.
type CTAView struct {
	Heading string
	Text    string
	Book    Trigger
}

// ServicesFor builds the catalog view. expanded names the card whose
// detailed description is open; at most one card is open at a time.
func ServicesFor(rec *content.Record, expanded string) Services {
	s := rec.Services

	cards := make([]ServiceCard, 0, len(s.Items))
	for i, item := range s.Items {
		cards = append(cards, ServiceCard{
			ID:          item.ID,
			Title:       item.Title,
			Description: item.Description,
			Detail:      item.Detail,
			Icon:        icon.SVG(item.Icon, icon.ServiceFallback, "service-icon"),
			Price:       content.PriceLabel(item.Price),
			Duration:    item.Duration,
			ReadMore:    s.ReadMore,
			Expanded:    item.Detail != "" && item.ID == expanded,
			Book:        trigger(rec, s.BookLabel, SourceServices, item.EventType),
			Animation:   Animation{Direction: "up", DelayMS: i * StaggerMS},
		})
	}

	return Services{
		Heading:    s.Heading,
		Subheading: s.Subheading,
		Cards:      cards,
		CTA: CTAView{
			Heading: s.CTA.Heading,
			Text:    s.CTA.Text,
			Book:    trigger(rec, s.CTA.Button, SourceServices, ""),
		},
	}
}
