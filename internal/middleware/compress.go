// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"compress/gzip"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"sync"
)

// gzipTypes are the media types outside text/* worth compressing.
var gzipTypes = map[string]bool{
	"application/javascript": true,
	"application/json":       true,
	"application/ld+json":    true,
	"application/xml":        true,
	"image/svg+xml":          true,
	"image/x-icon":           true,
}

// Compress gzips responses once their body reaches minSize bytes. Smaller
// bodies, ranges and already encoded responses pass through unchanged.
// Bytes are held back only until the threshold is crossed; after that the
// body streams through a pooled gzip writer.
func Compress(level, minSize int) func(http.Handler) http.Handler {
	writers := &sync.Pool{New: func() any {
		gz, err := gzip.NewWriterLevel(io.Discard, level)
		if err != nil {
			gz = gzip.NewWriter(io.Discard)
		}
		return gz
	}}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept-Encoding")
			if r.Method == http.MethodHead || !acceptsGzip(r.Header.Get("Accept-Encoding")) {
				next.ServeHTTP(w, r)
				return
			}

			gw := &gzipWriter{ResponseWriter: w, writers: writers, minSize: minSize}
			defer func() { _ = gw.Close() }()
			next.ServeHTTP(gw, r)
		})
	}
}

// acceptsGzip reports whether an Accept-Encoding value lists gzip with a
// nonzero quality.
func acceptsGzip(header string) bool {
	for part := range strings.SplitSeq(header, ",") {
		coding, params, _ := strings.Cut(part, ";")
		if !strings.EqualFold(strings.TrimSpace(coding), "gzip") {
			continue
		}
		q, ok := strings.CutPrefix(strings.ReplaceAll(params, " ", ""), "q=")
		if !ok {
			return true
		}
		v, err := strconv.ParseFloat(q, 64)
		return err == nil && v > 0
	}
	return false
}

// isCompressible reports whether a Content-Type value names a text-like body.
func isCompressible(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/") || gzipTypes[mediaType]
}

type gzipWriter struct {
	http.ResponseWriter
	writers *sync.Pool
	minSize int

	status  int
	pending []byte
	started bool
	gz      *gzip.Writer
}

func (g *gzipWriter) WriteHeader(code int) {
	if g.status == 0 {
		g.status = code
	}
}

func (g *gzipWriter) Write(p []byte) (int, error) {
	if g.status == 0 {
		g.status = http.StatusOK
	}
	switch {
	case !g.started:
		g.pending = append(g.pending, p...)
		if len(g.pending) >= g.minSize {
			if err := g.start(); err != nil {
				return 0, err
			}
		}
		return len(p), nil
	case g.gz != nil:
		return g.gz.Write(p)
	default:
		return g.ResponseWriter.Write(p)
	}
}

// start commits the status line, choosing plain or gzip output, and
// writes the held-back bytes.
func (g *gzipWriter) start() error {
	g.started = true
	if g.shouldCompress() {
		h := g.Header()
		h.Set("Content-Encoding", "gzip")
		h.Del("Content-Length")
		g.gz = g.writers.Get().(*gzip.Writer)
		g.gz.Reset(g.ResponseWriter)
	}
	g.ResponseWriter.WriteHeader(g.status)

	pending := g.pending
	g.pending = nil
	if len(pending) == 0 {
		return nil
	}
	var err error
	if g.gz != nil {
		_, err = g.gz.Write(pending)
	} else {
		_, err = g.ResponseWriter.Write(pending)
	}
	return err
}

func (g *gzipWriter) shouldCompress() bool {
	switch {
	case len(g.pending) == 0 || len(g.pending) < g.minSize:
		return false
	case g.status < http.StatusOK, g.status == http.StatusNoContent,
		g.status == http.StatusPartialContent, g.status == http.StatusNotModified:
		return false
	case g.Header().Get("Content-Encoding") != "":
		return false
	}
	return isCompressible(g.Header().Get("Content-Type"))
}

// Close writes anything still held back and ends the gzip stream.
func (g *gzipWriter) Close() error {
	if !g.started {
		if g.status == 0 {
			return nil
		}
		if err := g.start(); err != nil {
			return err
		}
	}
	if g.gz == nil {
		return nil
	}
	err := g.gz.Close()
	g.gz.Reset(io.Discard)
	g.writers.Put(g.gz)
	g.gz = nil
	return err
}

func (g *gzipWriter) Unwrap() http.ResponseWriter { return g.ResponseWriter }
