// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package live

import (
	"context"
	"fmt"

	"github.com/olegiv/counsel-site/internal/content"
)

// Hero forwards the primary call to action and scrolls to the services section.
type Hero struct {
	book Trigger
}

// NewHero creates the hero component.
func NewHero(book Trigger) *Hero {
	return &Hero{book: book}
}

// ID implements Component.
func (h *Hero) ID() string { return "hero" }

// Mount implements Component.
func (h *Hero) Mount(context.Context, *Patch) error { return nil }

// HandleEvent implements Component.
func (h *Hero) HandleEvent(ctx context.Context, ev Event, p *Patch) error {
	switch ev.Name {
	case "book":
		return h.book(ctx, "", p)
	case "explore":
		p.ScrollTo(OffsetScroll(ev.Payload.Top))
		return nil
	default:
		return unknownEvent(h, ev.Name)
	}
}

// Terminate implements Component.
func (h *Hero) Terminate(context.Context, TerminateReason, *Patch) {}

// Services owns the accordion state: a single shared expanded id, so at
// most one card shows its detailed description.
type Services struct {
	items    []content.Service
	book     Trigger
	expanded string
}

// NewServices creates the catalog component.
func NewServices(items []content.Service, book Trigger) *Services {
	return &Services{items: items, book: book}
}

// ID implements Component.
func (s *Services) ID() string { return "services" }

// Expanded returns the id of the open card, or "".
func (s *Services) Expanded() string { return s.expanded }

// Mount implements Component.
func (s *Services) Mount(context.Context, *Patch) error { return nil }

// HandleEvent implements Component.
func (s *Services) HandleEvent(ctx context.Context, ev Event, p *Patch) error {
	switch ev.Name {
	case "toggle":
		item, ok := s.find(ev.Payload.ID)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownService, ev.Payload.ID)
		}
		if item.Detail == "" {
			return nil
		}
		s.toggle(item.ID, p)
		return nil
	case "book":
		if ev.Payload.ID == "" {
			return s.book(ctx, "", p)
		}
		item, ok := s.find(ev.Payload.ID)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownService, ev.Payload.ID)
		}
		return s.book(ctx, item.EventType, p)
	default:
		return unknownEvent(s, ev.Name)
	}
}

// Terminate implements Component.
func (s *Services) Terminate(context.Context, TerminateReason, *Patch) {
	s.expanded = ""
}

func (s *Services) toggle(id string, p *Patch) {
	if s.expanded == id {
		p.SetOpen(cardSelector(id), false)
		s.expanded = ""
		return
	}
	if s.expanded != "" {
		p.SetOpen(cardSelector(s.expanded), false)
	}
	p.SetOpen(cardSelector(id), true)
	s.expanded = id
}

func (s *Services) find(id string) (content.Service, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return content.Service{}, false
}

func cardSelector(id string) string {
	return "#service-" + id + "-details"
}

// Contact forwards its call to action.
type Contact struct {
	book Trigger
}

// NewContact creates the contact component.
func NewContact(book Trigger) *Contact {
	return &Contact{book: book}
}

// ID implements Component.
func (c *Contact) ID() string { return "contact" }

// Mount implements Component.
func (c *Contact) Mount(context.Context, *Patch) error { return nil }

// HandleEvent implements Component.
func (c *Contact) HandleEvent(ctx context.Context, ev Event, p *Patch) error {
	if ev.Name != "book" {
		return unknownEvent(c, ev.Name)
	}
	return c.book(ctx, "", p)
}

// Terminate implements Component.
func (c *Contact) Terminate(context.Context, TerminateReason, *Patch) {}
