// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// Page is one fully rendered HTML document.
type Page struct {
	Body       []byte    `msgpack:"b"`
	ETag       string    `msgpack:"e"`
	RenderedAt time.Time `msgpack:"t"`
}

// prefixDeleter is implemented by backends that can drop a key range.
type prefixDeleter interface {
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// PageCache caches rendered pages keyed by page name and a version string.
// The version changes whenever the content record, theme or build changes,
// so stale entries are never served after a deploy.
type PageCache struct {
	backend Cacher
	pages   *Entries[Page]
	version string
	group   singleflight.Group
}

// NewPageCache creates a page cache storing entries in backend for ttl.
func NewPageCache(backend Cacher, ttl time.Duration, version string) *PageCache {
	return &PageCache{
		backend: backend,
		pages:   NewEntries[Page](backend, ttl),
		version: version,
	}
}

func (p *PageCache) key(name string) string {
	return "page:" + p.version + ":" + name
}

// Get returns the cached page, rendering it at most once per key
// across concurrent callers on a miss.
func (p *PageCache) Get(ctx context.Context, name string, render func() ([]byte, error)) (*Page, error) {
	key := p.key(name)
	if page, ok := p.pages.Load(ctx, key); ok {
		return &page, nil
	}

	v, err, _ := p.group.Do(key, func() (any, error) {
		page, err := p.pages.Fetch(ctx, key, func() (Page, error) {
			body, err := render()
			if err != nil {
				return Page{}, fmt.Errorf("rendering %s: %w", name, err)
			}
			return Page{Body: body, ETag: ETag(body), RenderedAt: time.Now().UTC()}, nil
		})
		return &page, err
	})
	if err != nil {
		return nil, err
	}
	return v.(*Page), nil
}

// Invalidate drops every cached page.
func (p *PageCache) Invalidate(ctx context.Context) error {
	if pd, ok := p.backend.(prefixDeleter); ok {
		return pd.DeleteByPrefix(ctx, "page:")
	}
	return p.backend.Clear(ctx)
}

// Stats returns backend statistics when the backend tracks them.
func (p *PageCache) Stats() (Stats, bool) {
	sp, ok := p.backend.(StatsProvider)
	if !ok {
		return Stats{}, false
	}
	return sp.Stats(), true
}

// ETag returns a strong entity tag for body.
func ETag(body []byte) string {
	sum := sha256.Sum256(body)
	return `"` + hex.EncodeToString(sum[:8]) + `"`
}
