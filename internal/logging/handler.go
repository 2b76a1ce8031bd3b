// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors warnings and errors
// into a bounded in-memory event log surfaced by the health endpoint.
package logging

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Event categories.
const (
	CategoryLive    = "live"
	CategoryHTTP    = "http"
	CategoryCache   = "cache"
	CategoryContent = "content"
	CategoryTheme   = "theme"
	CategorySystem  = "system"
)

// DefaultCapacity is the number of events kept when none is configured.
const DefaultCapacity = 100

// Event is one mirrored log record.
type Event struct {
	Time     time.Time         `json:"time"`
	Level    string            `json:"level"`
	Category string            `json:"category"`
	Message  string            `json:"message"`
	Attrs    map[string]string `json:"attrs,omitempty"`
}

// EventLog is a fixed-size ring of the most recent events.
type EventLog struct {
	mu     sync.Mutex
	events []Event
	next   int
	full   bool
	total  int64
}

// NewEventLog creates an event log holding up to capacity events.
func NewEventLog(capacity int) *EventLog {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &EventLog{events: make([]Event, capacity)}
}

func (l *EventLog) add(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events[l.next] = e
	l.next = (l.next + 1) % len(l.events)
	if l.next == 0 {
		l.full = true
	}
	l.total++
}

// Recent returns up to n events, newest first. n <= 0 returns all of them.
func (l *EventLog) Recent(n int) []Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	size := l.next
	if l.full {
		size = len(l.events)
	}
	if n <= 0 || n > size {
		n = size
	}

	out := make([]Event, 0, n)
	for i := 1; i <= n; i++ {
		idx := (l.next - i + len(l.events)) % len(l.events)
		out = append(out, l.events[idx])
	}
	return out
}

// Total returns the number of events recorded since start, including evicted ones.
func (l *EventLog) Total() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// EventLogHandler is a slog.Handler that wraps another handler and also
// records WARN and ERROR level logs in an EventLog.
type EventLogHandler struct {
	inner  slog.Handler
	log    *EventLog
	level  slog.Level // minimum level mirrored into the event log
	attrs  []slog.Attr
	groups []string
}

// NewEventLogHandler creates a new EventLogHandler that wraps the given handler.
func NewEventLogHandler(inner slog.Handler, log *EventLog) *EventLogHandler {
	return NewEventLogHandlerWithLevel(inner, log, slog.LevelWarn)
}

// NewEventLogHandlerWithLevel creates a new EventLogHandler with a custom minimum level.
func NewEventLogHandlerWithLevel(inner slog.Handler, log *EventLog, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner: inner,
		log:   log,
		level: level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.log.add(h.event(r))
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithAttrs(attrs)
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), h.qualify(attrs)...)
	return &clone
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.inner = h.inner.WithGroup(name)
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// qualify prefixes attribute keys with the open groups.
func (h *EventLogHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if len(h.groups) == 0 {
		return attrs
	}
	prefix := strings.Join(h.groups, ".") + "."
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: prefix + a.Key, Value: a.Value}
	}
	return out
}

func (h *EventLogHandler) event(r slog.Record) Event {
	e := Event{
		Time:    r.Time,
		Level:   levelName(r.Level),
		Message: r.Message,
	}

	attrs := append([]slog.Attr{}, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.qualify([]slog.Attr{a})...)
		return true
	})

	for _, a := range attrs {
		if a.Key == "category" {
			e.Category = a.Value.String()
			continue
		}
		if e.Attrs == nil {
			e.Attrs = make(map[string]string, len(attrs))
		}
		e.Attrs[a.Key] = a.Value.String()
	}

	if e.Category == "" {
		e.Category = inferCategory(r.Message, e.Attrs)
	}
	return e
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warning"
	default:
		return "info"
	}
}

// inferCategory guesses a category from the session attribute or the message.
func inferCategory(msg string, attrs map[string]string) string {
	if _, ok := attrs["session"]; ok {
		return CategoryLive
	}

	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "live") || strings.Contains(msg, "websocket") || strings.Contains(msg, "session"):
		return CategoryLive
	case strings.Contains(msg, "cache") || strings.Contains(msg, "redis"):
		return CategoryCache
	case strings.Contains(msg, "content") || strings.Contains(msg, "record"):
		return CategoryContent
	case strings.Contains(msg, "theme") || strings.Contains(msg, "template") || strings.Contains(msg, "render"):
		return CategoryTheme
	case strings.Contains(msg, "request") || strings.Contains(msg, "rate limit"):
		return CategoryHTTP
	default:
		return CategorySystem
	}
}
