// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package live

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/olegiv/counsel-site/internal/content"
)

// MountRef is the reply ref of the commands sent when a session starts.
const MountRef = "mount"

// ErrRateLimited is reported when a session sends events too quickly.
var ErrRateLimited = errors.New("too many events")

// Session is one connected page. Events are handled sequentially by the
// connection goroutine, so the component tree needs no locking.
type Session struct {
	ID      string
	Created time.Time

	page    *Page
	limiter *rate.Limiter
	logger  *slog.Logger
	closed  bool
}

// SessionConfig configures new sessions.
type SessionConfig struct {
	EventsPerSecond float64
	Burst           int
}

// DefaultSessionConfig bounds the events that change what is shown
// (opening the modal, toggling cards, navigating).
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{EventsPerSecond: 30, Burst: 60}
}

// NewSession creates a session with a fresh component tree.
func NewSession(rec *content.Record, renderer Renderer, cfg SessionConfig, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New().String()
	return &Session{
		ID:      id,
		Created: time.Now(),
		page:    NewPage(rec, renderer),
		limiter: rate.NewLimiter(rate.Limit(cfg.EventsPerSecond), cfg.Burst),
		logger:  logger.With("session", id),
	}
}

// Page returns the session's page composer.
func (s *Session) Page() *Page { return s.page }

// Mount starts the session and returns the initial commands.
func (s *Session) Mount(ctx context.Context) (Reply, error) {
	var p Patch
	if err := s.page.Mount(ctx, &p); err != nil {
		return Reply{}, err
	}
	return Reply{Ref: MountRef, Commands: p.Commands}, nil
}

// Handle dispatches one event. Errors are reported in the reply; the session stays usable.
func (s *Session) Handle(ctx context.Context, ev Event) Reply {
	reply := Reply{Ref: ev.Ref}

	if !settles(ev) && !s.limiter.Allow() {
		reply.Error = ErrRateLimited.Error()
		return reply
	}

	var p Patch
	if err := s.page.HandleEvent(ctx, ev, &p); err != nil {
		if IsClientError(err) {
			s.logger.Warn("rejected live event", "target", ev.Target, "event", ev.Name, "error", err)
		} else {
			s.logger.Error("live event failed", "target", ev.Target, "event", ev.Name, "error", err)
		}
		reply.Error = err.Error()
		return reply
	}

	reply.Commands = p.Commands
	return reply
}

// settles reports whether ev can only move the page toward its resting
// state: scroll position updates and the ways of closing the menu or the
// booking modal. These are never rate limited, so the last scroll offset
// and an Escape press always apply.
func settles(ev Event) bool {
	switch ev.Target {
	case "nav":
		return ev.Name == "scroll" || ev.Name == "menu_close"
	case "booking":
		return ev.Name == CloseControl || ev.Name == CloseBackdrop || ev.Name == "keydown"
	}
	return false
}

// Close terminates the component tree once; later calls return an empty reply.
func (s *Session) Close(ctx context.Context, reason TerminateReason) Reply {
	if s.closed {
		return Reply{}
	}
	s.closed = true

	var p Patch
	s.page.Terminate(ctx, reason, &p)
	s.logger.Debug("live session closed", "reason", reason.String(), "duration", time.Since(s.Created))
	return Reply{Commands: p.Commands}
}

// Registry tracks the open sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	total    int64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Add registers a session.
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	r.total++
}

// Remove unregisters a session.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Active returns the number of open sessions.
func (r *Registry) Active() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Total returns the number of sessions ever opened.
func (r *Registry) Total() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total
}
