// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package live

import (
	"bytes"
	"context"
	"fmt"

	"github.com/olegiv/counsel-site/internal/content"
	"github.com/olegiv/counsel-site/internal/section"
)

// Booking modal DOM hooks and partial name.
const (
	BookingRoot    = "#booking-root"
	bookingDialog  = "#booking-dialog"
	bookingPartial = "booking-modal.html"
)

// Close triggers.
const (
	CloseControl  = "close"
	CloseBackdrop = "backdrop"
	CloseEscape   = "escape"
)

// BookingModal renders the scheduling overlay. It does not own the open flag:
// the page passes it down through Sync and closing goes through onClose.
type BookingModal struct {
	rec      *content.Record
	renderer Renderer
	onClose  CloseFunc

	open   bool
	script scriptResource
	scroll bool // document scroll locked
	keys   bool // keydown listener registered
}

// scriptResource tracks the injected provider script so that it is
// acquired once per open session and released on every exit path.
type scriptResource struct {
	held     bool
	acquired int
	released int
}

func (s *scriptResource) acquire(src string, p *Patch) {
	if s.held {
		return
	}
	s.held = true
	s.acquired++
	p.InjectScript(section.ScriptID, src)
}

func (s *scriptResource) release(p *Patch) {
	if !s.held {
		return
	}
	s.held = false
	s.released++
	p.RemoveScript(section.ScriptID)
}

// NewBookingModal creates the modal component.
func NewBookingModal(rec *content.Record, renderer Renderer, onClose CloseFunc) *BookingModal {
	return &BookingModal{rec: rec, renderer: renderer, onClose: onClose}
}

// ID implements Component.
func (m *BookingModal) ID() string { return "booking" }

// Open reports whether the modal is showing.
func (m *BookingModal) Open() bool { return m.open }

// ScriptHeld reports whether the provider script is currently injected.
func (m *BookingModal) ScriptHeld() bool { return m.script.held }

// ScrollLocked reports whether document scroll is suppressed.
func (m *BookingModal) ScrollLocked() bool { return m.scroll }

// Mount implements Component.
func (m *BookingModal) Mount(context.Context, *Patch) error { return nil }

// Sync reconciles the modal with the page's open flag.
func (m *BookingModal) Sync(_ context.Context, open bool, eventType string, p *Patch) error {
	switch {
	case open && !m.open:
		return m.enter(eventType, p)
	case !open && m.open:
		m.exit(p)
	}
	return nil
}

// HandleEvent implements Component. All three close paths go through onClose.
func (m *BookingModal) HandleEvent(ctx context.Context, ev Event, p *Patch) error {
	switch ev.Name {
	case CloseControl, CloseBackdrop:
		if !m.open {
			return nil
		}
		return m.onClose(ctx, ev.Name, p)
	case "keydown":
		if !m.open || ev.Payload.Key != "Escape" {
			return nil
		}
		return m.onClose(ctx, CloseEscape, p)
	default:
		return unknownEvent(m, ev.Name)
	}
}

// Terminate releases the script, scroll lock and key listener if still held.
func (m *BookingModal) Terminate(_ context.Context, _ TerminateReason, p *Patch) {
	if m.open {
		m.exit(p)
	}
}

func (m *BookingModal) enter(eventType string, p *Patch) error {
	view, err := section.BookingFor(m.rec, eventType)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := m.renderer.RenderPartial(&buf, bookingPartial, view); err != nil {
		return fmt.Errorf("rendering booking modal: %w", err)
	}

	m.open = true
	p.Render(BookingRoot, buf.String())
	m.script.acquire(view.ScriptURL, p)
	if !m.scroll {
		m.scroll = true
		p.LockScroll()
	}
	if !m.keys {
		m.keys = true
		p.Listen("keydown", m.ID())
	}
	p.Focus(bookingDialog)
	return nil
}

func (m *BookingModal) exit(p *Patch) {
	m.open = false
	p.Clear(BookingRoot)
	m.script.release(p)
	if m.scroll {
		m.scroll = false
		p.UnlockScroll()
	}
	if m.keys {
		m.keys = false
		p.Unlisten("keydown", m.ID())
	}
}
