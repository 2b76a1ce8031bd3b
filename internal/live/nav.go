// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package live

import (
	"context"
	"fmt"
	"slices"

	"github.com/olegiv/counsel-site/internal/content"
	"github.com/olegiv/counsel-site/internal/section"
)

// DOM hooks shared with the theme markup.
const (
	navSelector    = "#site-nav"
	toggleSelector = "#nav-toggle"
)

// Navigation owns the scrolled flag and the mobile menu flag.
type Navigation struct {
	book     Trigger
	scrolled bool
	menuOpen bool
}

// NewNavigation creates the header component.
func NewNavigation(book Trigger) *Navigation {
	return &Navigation{book: book}
}

// ID implements Component.
func (n *Navigation) ID() string { return "nav" }

// Scrolled reports whether the header is in its elevated style.
func (n *Navigation) Scrolled() bool { return n.scrolled }

// MenuOpen reports whether the mobile menu is expanded.
func (n *Navigation) MenuOpen() bool { return n.menuOpen }

// Mount registers the scroll listener and states the header flags, so a
// reconnecting page drops whatever an earlier session left behind.
func (n *Navigation) Mount(_ context.Context, p *Patch) error {
	p.Listen("scroll", n.ID())
	p.SetBool(navSelector, "data-scrolled", n.scrolled)
	p.SetBool(navSelector, "data-menu-open", n.menuOpen)
	p.SetBool(toggleSelector, "aria-expanded", n.menuOpen)
	return nil
}

// HandleEvent implements Component.
func (n *Navigation) HandleEvent(ctx context.Context, ev Event, p *Patch) error {
	switch ev.Name {
	case "scroll":
		n.setScrolled(ev.Payload.Y > section.ScrollThreshold, p)
		return nil
	case "navigate":
		if !slices.Contains(content.SectionIDs, ev.Payload.Section) {
			return fmt.Errorf("%w: %q", ErrUnknownSection, ev.Payload.Section)
		}
		p.ScrollTo(OffsetScroll(ev.Payload.Top))
		n.setMenu(false, p)
		return nil
	case "menu_toggle":
		n.setMenu(!n.menuOpen, p)
		return nil
	case "menu_close":
		n.setMenu(false, p)
		return nil
	case "book":
		n.setMenu(false, p)
		return n.book(ctx, "", p)
	default:
		return unknownEvent(n, ev.Name)
	}
}

// Terminate removes the scroll listener.
func (n *Navigation) Terminate(_ context.Context, _ TerminateReason, p *Patch) {
	p.Unlisten("scroll", n.ID())
	n.menuOpen = false
}

// setScrolled only emits a command when the style actually changes.
func (n *Navigation) setScrolled(v bool, p *Patch) {
	if n.scrolled == v {
		return
	}
	n.scrolled = v
	p.SetBool(navSelector, "data-scrolled", v)
}

func (n *Navigation) setMenu(open bool, p *Patch) {
	if n.menuOpen == open {
		return
	}
	n.menuOpen = open
	p.SetBool(navSelector, "data-menu-open", open)
	p.SetBool(toggleSelector, "aria-expanded", open)
}
