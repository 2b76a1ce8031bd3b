// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Entries stores values of one type in a byte cache, encoded as MessagePack
// so Redis entries stay compact. Entries written by an incompatible build
// fail to decode and are dropped on read.
type Entries[T any] struct {
	backend Cacher
	ttl     time.Duration
}

// NewEntries wraps backend. A zero ttl uses the backend default.
func NewEntries[T any](backend Cacher, ttl time.Duration) *Entries[T] {
	return &Entries[T]{backend: backend, ttl: ttl}
}

// Load returns the value under key. Any backend error is reported as a miss.
func (e *Entries[T]) Load(ctx context.Context, key string) (T, bool) {
	var v T
	data, err := e.backend.Get(ctx, key)
	if err != nil {
		return v, false
	}
	if err := msgpack.Unmarshal(data, &v); err != nil {
		_ = e.backend.Delete(ctx, key)
		var zero T
		return zero, false
	}
	return v, true
}

// Store encodes v and writes it under key.
func (e *Entries[T]) Store(ctx context.Context, key string, v T) error {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return err
	}
	return e.backend.Set(ctx, key, data, e.ttl)
}

// Fetch returns the stored value or builds, stores and returns a new one.
// Build errors are returned as is and nothing is stored. A failed store
// is ignored since the built value is still good.
func (e *Entries[T]) Fetch(ctx context.Context, key string, build func() (T, error)) (T, error) {
	if v, ok := e.Load(ctx, key); ok {
		return v, nil
	}
	v, err := build()
	if err != nil {
		var zero T
		return zero, err
	}
	_ = e.Store(ctx, key, v)
	return v, nil
}
