// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package live holds the server-side state of the interactive page parts
// (navigation, services accordion, booking modal) and the WebSocket channel
// that carries browser events in and client commands out.
package live

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Common dispatch errors.
var (
	ErrUnknownTarget  = errors.New("unknown event target")
	ErrUnknownEvent   = errors.New("unknown event")
	ErrUnknownSection = errors.New("unknown section")
	ErrUnknownService = errors.New("unknown service")
)

// Component is one stateful piece of the page driven by client events.
// Every method appends the client-side effects it needs to the patch.
type Component interface {
	// ID is the event target name the client addresses.
	ID() string

	// Mount is called once when the session starts.
	Mount(ctx context.Context, p *Patch) error

	// HandleEvent reacts to a client event addressed to this component.
	HandleEvent(ctx context.Context, ev Event, p *Patch) error

	// Terminate releases everything the component acquired. It runs on
	// every exit path of the session.
	Terminate(ctx context.Context, reason TerminateReason, p *Patch)
}

// TerminateReason indicates why a session is ending.
type TerminateReason int

const (
	// TerminateNormal indicates clean disconnection.
	TerminateNormal TerminateReason = iota
	// TerminateShutdown indicates server shutdown.
	TerminateShutdown
	// TerminateError indicates termination due to an error.
	TerminateError
)

func (r TerminateReason) String() string {
	switch r {
	case TerminateNormal:
		return "normal"
	case TerminateShutdown:
		return "shutdown"
	case TerminateError:
		return "error"
	default:
		return "unknown"
	}
}

// Trigger opens the booking modal for an event type ("" = default).
// It is the one callback handed from the page to its sections.
type Trigger func(ctx context.Context, eventType string, p *Patch) error

// CloseFunc closes the booking modal; trigger names what closed it.
type CloseFunc func(ctx context.Context, trigger string, p *Patch) error

// Renderer renders a named theme partial.
type Renderer interface {
	RenderPartial(w io.Writer, name string, data any) error
}

func unknownEvent(c Component, name string) error {
	return fmt.Errorf("%w: %s.%s", ErrUnknownEvent, c.ID(), name)
}
