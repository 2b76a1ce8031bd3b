// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package live

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/coder/websocket"

	"github.com/olegiv/counsel-site/internal/content"
)

// Config configures the live endpoint.
type Config struct {
	// AllowedOrigins lists extra origins allowed to connect.
	// Same-origin connections are always allowed.
	AllowedOrigins []string

	// InsecureDevMode disables origin validation (development only).
	InsecureDevMode bool

	MaxMessageBytes int64
	WriteTimeout    time.Duration
	Session         SessionConfig
}

// DefaultConfig returns secure defaults.
func DefaultConfig() Config {
	return Config{
		MaxMessageBytes: 4096,
		WriteTimeout:    5 * time.Second,
		Session:         DefaultSessionConfig(),
	}
}

// Server upgrades requests to WebSocket and runs one session per connection.
type Server struct {
	rec      *content.Record
	renderer Renderer
	cfg      Config
	logger   *slog.Logger
	registry *Registry
	patterns []string

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates the live endpoint handler.
func NewServer(rec *content.Record, renderer Renderer, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())

	var patterns []string
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			patterns = append(patterns, "*")
			continue
		}
		if u, err := url.Parse(o); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
		}
	}

	return &Server{
		rec:      rec,
		renderer: renderer,
		cfg:      cfg,
		logger:   logger,
		registry: NewRegistry(),
		patterns: patterns,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Registry returns the session registry.
func (s *Server) Registry() *Registry { return s.registry }

// Shutdown ends every open session with TerminateShutdown.
func (s *Server) Shutdown() {
	s.cancel()
}

// isOriginAllowed checks the Origin header against the request host and the allow list.
func (s *Server) isOriginAllowed(origin, requestHost string) bool {
	if s.cfg.InsecureDevMode || origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if originURL.Host == requestHost {
		return true
	}

	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
		if allowedURL, err := url.Parse(allowed); err == nil && allowedURL.Host == originURL.Host {
			return true
		}
	}
	return false
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if !s.isOriginAllowed(origin, r.Host) {
		s.logger.Warn("live connection rejected", "origin", origin, "host", r.Host)
		http.Error(w, "Forbidden: Origin not allowed", http.StatusForbidden)
		return
	}

	// Sessions outlive the server's read and write timeouts.
	rc := http.NewResponseController(w)
	_ = rc.SetReadDeadline(time.Time{})
	_ = rc.SetWriteDeadline(time.Time{})

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		Subprotocols:       []string{SubprotocolMsgPack, SubprotocolJSON},
		OriginPatterns:     s.patterns,
		InsecureSkipVerify: s.cfg.InsecureDevMode,
	})
	if err != nil {
		s.logger.Warn("websocket accept failed", "error", err)
		return
	}
	defer func() { _ = conn.CloseNow() }()

	if s.cfg.MaxMessageBytes > 0 {
		conn.SetReadLimit(s.cfg.MaxMessageBytes)
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	codec := CodecFor(conn.Subprotocol())
	sess := NewSession(s.rec, s.renderer, s.cfg.Session, s.logger)
	s.registry.Add(sess)
	defer s.registry.Remove(sess.ID)

	s.logger.Debug("live session opened", "session", sess.ID, "codec", codec.Name())

	reason := s.serve(ctx, conn, codec, sess)

	// The client undoes its own side effects on disconnect, so the
	// teardown commands are only applied to server state here.
	sess.Close(context.WithoutCancel(ctx), reason)
	s.logger.Debug("live session ended", "session", sess.ID, "reason", reason.String())

	switch reason {
	case TerminateShutdown:
		_ = conn.Close(websocket.StatusGoingAway, "server shutting down")
	case TerminateError:
		_ = conn.Close(websocket.StatusInternalError, "session error")
	default:
		_ = conn.Close(websocket.StatusNormalClosure, "")
	}
}

// serve runs the read loop until the connection ends and reports why.
func (s *Server) serve(ctx context.Context, conn *websocket.Conn, codec Codec, sess *Session) TerminateReason {
	mount, err := sess.Mount(ctx)
	if err != nil {
		s.logger.Error("mounting live session", "session", sess.ID, "error", err)
		return TerminateError
	}
	if err := s.write(ctx, conn, codec, mount); err != nil {
		return s.reasonFor(err)
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return s.reasonFor(err)
		}

		var reply Reply
		ev, err := codec.DecodeEvent(data)
		if err != nil {
			s.logger.Warn("invalid live message", "session", sess.ID, "error", err)
			reply = Reply{Ref: ev.Ref, Error: err.Error()}
		} else {
			reply = sess.Handle(ctx, ev)
		}

		if err := s.write(ctx, conn, codec, reply); err != nil {
			return s.reasonFor(err)
		}
	}
}

func (s *Server) write(ctx context.Context, conn *websocket.Conn, codec Codec, reply Reply) error {
	data, err := codec.EncodeReply(reply)
	if err != nil {
		return err
	}

	timeout := s.cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	wctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return conn.Write(wctx, codec.MessageType(), data)
}

func (s *Server) reasonFor(err error) TerminateReason {
	if s.ctx.Err() != nil {
		return TerminateShutdown
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return TerminateNormal
	}
	if errors.Is(err, context.Canceled) {
		return TerminateNormal
	}
	s.logger.Debug("live connection ended", "error", err)
	return TerminateError
}
