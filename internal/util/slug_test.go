// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Individual Therapy", "individual-therapy"},
		{"Couples & Family Therapy", "couples-family-therapy"},
		{"  What to expect?  ", "what-to-expect"},
		{"Anxiety / Depression", "anxiety-depression"},
		{"Séance découverte", "seance-decouverte"},
		{"50-minute session", "50-minute-session"},
		{"already--hyphenated--", "already-hyphenated"},
		{"snake_case_id", "snake-case-id"},
		{"Привет World", "world"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Slugify(tt.in); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSlugifyOutputIsValid(t *testing.T) {
	for _, in := range []string{"Individual Therapy", "EMDR (trauma)", "Couples & Family", "a - b"} {
		if got := Slugify(in); !IsValidSlug(got) {
			t.Errorf("Slugify(%q) = %q, not a valid slug", in, got)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"individual", true},
		{"couples-therapy", true},
		{"intake-30", true},
		{"", false},
		{"-leading", false},
		{"trailing-", false},
		{"double--hyphen", false},
		{"Upper", false},
		{"with space", false},
		{"under_score", false},
		{"-", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsValidSlug(tt.in); got != tt.want {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestAnchor(t *testing.T) {
	tests := []struct {
		input    string
		fallback string
		expected string
	}{
		{"Information we collect", "section", "information-we-collect"},
		{"Конфиденциальность", "section", "konfidentsialnost"},
		{"!!!", "section-3", "section-3"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Anchor(tt.input, tt.fallback); got != tt.expected {
				t.Errorf("Anchor(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
