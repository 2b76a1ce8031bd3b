// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package section

import (
	"strconv"

	"github.com/olegiv/counsel-site/internal/content"
)

// Testimonials is the client reviews section.
type Testimonials struct {
	Heading    string
	Subheading string
	Cards      []TestimonialCard
	Aggregate  AggregateView
}

// TestimonialCard is one review.
type TestimonialCard struct {
	ID        string
	Name      string
	Initial   string
	Photo     string
	Location  string
	Text      string
	Rating    int
	Stars     StarRow
	Animation Animation
}

// Fixed wording of the aggregate block.
const (
	AggregateRatingLabel = "5.0 Average Rating"
	ReviewCountSuffix    = "+ client reviews"
)

// AggregateView is the summary block under the grid.
type AggregateView struct {
	Stars       StarRow
	RatingLabel string
	Count       int
	CountLabel  string
}

// TestimonialsFor builds the reviews view.
func TestimonialsFor(rec *content.Record) Testimonials {
	t := rec.Testimonials

	cards := make([]TestimonialCard, 0, len(t.Items))
	for i, item := range t.Items {
		cards = append(cards, TestimonialCard{
			ID:        item.ID,
			Name:      item.Name,
			Initial:   content.Initial(item.Name),
			Photo:     item.Photo,
			Location:  item.Location,
			Text:      item.Text,
			Rating:    item.Rating,
			Stars:     StarRowFor(item.Rating, t.StarsLabel),
			Animation: Animation{Direction: "up", DelayMS: i * StaggerMS},
		})
	}

	count := len(t.Items)
	return Testimonials{
		Heading:    t.Heading,
		Subheading: t.Subheading,
		Cards:      cards,
		Aggregate: AggregateView{
			Stars:       StarRowFor(MaxStars, t.StarsLabel),
			RatingLabel: AggregateRatingLabel,
			Count:       count,
			CountLabel:  countLabel(t.Aggregate, count),
		},
	}
}

// countLabel renders "Based on 5+ client reviews".
func countLabel(a content.Aggregate, count int) string {
	label := strconv.Itoa(count) + ReviewCountSuffix
	if a.CountPrefix != "" {
		label = a.CountPrefix + " " + label
	}
	return label
}
