// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

// ErrOutsideBase is returned when a path resolves outside its base directory.
var ErrOutsideBase = errors.New("path escapes base directory")

// WithinBase returns nil when target, cleaned and made absolute, is base itself
// or lies below it. /assets-old never counts as inside /assets.
func WithinBase(base, target string) error {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return fmt.Errorf("resolving base %q: %w", base, err)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolving target %q: %w", target, err)
	}

	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return ErrOutsideBase
	}
	return nil
}

// JoinWithin joins a slash separated name, as taken from a URL, onto the
// directory base and rejects results outside it.
func JoinWithin(base, name string) (string, error) {
	if HasTraversal(name) {
		return "", ErrOutsideBase
	}
	full := filepath.Join(base, filepath.FromSlash(name))
	if err := WithinBase(base, full); err != nil {
		return "", err
	}
	return full, nil
}

// HasTraversal reports whether a slash separated relative path climbs above
// its root once cleaned. "a/../b" stays inside; "../b" and "a/../../b" do not.
func HasTraversal(p string) bool {
	p = strings.ReplaceAll(p, `\`, "/")
	cleaned := path.Clean(p)
	return cleaned == ".." || strings.HasPrefix(cleaned, "../")
}
