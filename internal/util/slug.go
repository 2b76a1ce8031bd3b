// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util holds small helpers shared by the content, markdown and
// handler packages: slugs and anchors, path containment, address checks.
package util

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks removes combining marks after decomposition ("é" becomes "e").
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lowercases s, drops accents and collapses every run of characters
// outside [a-z0-9] into a single hyphen. Leading and trailing hyphens are
// trimmed, so "  Couples & Family!  " becomes "couples-family".
func Slugify(s string) string {
	plain, _, err := transform.String(stripMarks, s)
	if err != nil {
		plain = s
	}

	var b strings.Builder
	b.Grow(len(plain))
	gap := false
	for _, r := range strings.ToLower(plain) {
		if isSlugRune(r) && r != '-' {
			if gap && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			gap = false
			continue
		}
		if r == '-' || unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			gap = true
		}
	}
	return b.String()
}

// Anchor converts a heading to a fragment identifier. Scripts without a Latin
// decomposition are transliterated first, so "Конфиденциальность" still yields
// a usable anchor. fallback is returned when nothing survives.
func Anchor(s, fallback string) string {
	if slug := Slugify(s); slug != "" {
		return slug
	}
	if slug := Slugify(unidecode.Unidecode(s)); slug != "" {
		return slug
	}
	return fallback
}

// IsValidSlug reports whether s is already in the form Slugify produces:
// non-empty, [a-z0-9] words joined by single hyphens.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}
	prevHyphen := true // disallows a leading hyphen
	for _, r := range s {
		if !isSlugRune(r) {
			return false
		}
		if r == '-' && prevHyphen {
			return false
		}
		prevHyphen = r == '-'
	}
	return !prevHyphen
}

func isSlugRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
}
