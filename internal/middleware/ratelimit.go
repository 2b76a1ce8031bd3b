// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// maxClients bounds the limiter table.
	maxClients = 10000

	// clientIdle is how long a client's bucket is kept after its last request.
	clientIdle = 10 * time.Minute
)

// ClientLimiter is a token bucket per client address for the public pages.
type ClientLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu      sync.Mutex
	clients map[string]*bucket
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// NewClientLimiter allows each client rps requests per second with bursts of burst.
func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	return &ClientLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
		clients: make(map[string]*bucket),
	}
}

// Allow spends one token from client's bucket.
func (l *ClientLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.clients[client]
	if !ok {
		if len(l.clients) >= maxClients {
			l.pruneLocked(now)
		}
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1)
}

// pruneLocked drops idle buckets. If every client is active the table is
// reset, which briefly hands everyone a fresh burst.
func (l *ClientLimiter) pruneLocked(now time.Time) {
	for key, b := range l.clients {
		if now.Sub(b.seen) > clientIdle {
			delete(l.clients, key)
		}
	}
	if len(l.clients) >= maxClients {
		slog.Warn("rate limiter table full, resetting", "clients", len(l.clients))
		clear(l.clients)
	}
}

// Middleware rejects clients over their budget with 429 and Retry-After.
func (l *ClientLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			if !l.Allow(ip) {
				slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Too many requests. Please wait a moment and try again.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP returns the host part of r.RemoteAddr. Behind a proxy, chi's
// RealIP runs first and rewrites RemoteAddr from the forwarding headers.
func ClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
