// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package live

import (
	"context"
	"errors"
	"fmt"

	"github.com/olegiv/counsel-site/internal/content"
)

// Page composes the interactive components and owns the one piece of
// state shared between them: whether the booking modal is open.
type Page struct {
	bookingOpen bool
	lastClose   string

	nav      *Navigation
	hero     *Hero
	services *Services
	contact  *Contact
	modal    *BookingModal

	children []Component
	byID     map[string]Component
}

// NewPage wires the components for one session.
func NewPage(rec *content.Record, renderer Renderer) *Page {
	p := &Page{}

	p.nav = NewNavigation(p.OpenBooking)
	p.hero = NewHero(p.OpenBooking)
	p.services = NewServices(rec.Services.Items, p.OpenBooking)
	p.contact = NewContact(p.OpenBooking)
	p.modal = NewBookingModal(rec, renderer, p.CloseBooking)

	p.children = []Component{p.nav, p.hero, p.services, p.contact, p.modal}
	p.byID = make(map[string]Component, len(p.children))
	for _, c := range p.children {
		p.byID[c.ID()] = c
	}
	return p
}

// ID implements Component.
func (p *Page) ID() string { return "page" }

// BookingOpen reports the modal-open flag.
func (p *Page) BookingOpen() bool { return p.bookingOpen }

// LastClose names the trigger that last closed the modal.
func (p *Page) LastClose() string { return p.lastClose }

// Navigation returns the header component.
func (p *Page) Navigation() *Navigation { return p.nav }

// Services returns the catalog component.
func (p *Page) Services() *Services { return p.services }

// Modal returns the booking modal component.
func (p *Page) Modal() *BookingModal { return p.modal }

// OpenBooking is the booking trigger passed to every section. Opening an
// already open modal does nothing, so modals never stack.
func (p *Page) OpenBooking(ctx context.Context, eventType string, out *Patch) error {
	if p.bookingOpen {
		return nil
	}
	p.bookingOpen = true
	if err := p.modal.Sync(ctx, true, eventType, out); err != nil {
		p.bookingOpen = false
		return err
	}
	return nil
}

// CloseBooking flips the flag back and lets the modal release its resources.
func (p *Page) CloseBooking(ctx context.Context, trigger string, out *Patch) error {
	if !p.bookingOpen {
		return nil
	}
	p.bookingOpen = false
	p.lastClose = trigger
	return p.modal.Sync(ctx, false, "", out)
}

// Mount implements Component.
func (p *Page) Mount(ctx context.Context, out *Patch) error {
	for _, c := range p.children {
		if err := c.Mount(ctx, out); err != nil {
			return fmt.Errorf("mounting %s: %w", c.ID(), err)
		}
	}
	return nil
}

// HandleEvent routes an event to its target component.
func (p *Page) HandleEvent(ctx context.Context, ev Event, out *Patch) error {
	c, ok := p.byID[ev.Target]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, ev.Target)
	}
	return c.HandleEvent(ctx, ev, out)
}

// Terminate tears children down in reverse mount order.
func (p *Page) Terminate(ctx context.Context, reason TerminateReason, out *Patch) {
	for i := len(p.children) - 1; i >= 0; i-- {
		p.children[i].Terminate(ctx, reason, out)
	}
	p.bookingOpen = false
}

// IsClientError reports whether err was caused by a malformed client event.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUnknownTarget) ||
		errors.Is(err, ErrUnknownEvent) ||
		errors.Is(err, ErrUnknownSection) ||
		errors.Is(err, ErrUnknownService)
}
