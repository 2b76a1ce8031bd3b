// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"fmt"
	"strings"
	"time"
)

// SecurityTxtLifetime is how long a served security.txt stays valid.
// RFC 9116 asks for less than a year.
const SecurityTxtLifetime = 180 * 24 * time.Hour

// SecurityTxt is the /.well-known/security.txt document (RFC 9116).
type SecurityTxt struct {
	Contacts  []string // "mailto:..." or "tel:..."; at least one is required
	Languages []string // Preferred-Languages
	Canonical string
	Policy    string
}

// Render writes the document with an Expires field SecurityTxtLifetime after
// issued, truncated to the day so the body is stable between restarts on the
// same day.
func (s SecurityTxt) Render(issued time.Time) (string, error) {
	var contacts []string
	for _, c := range s.Contacts {
		if c = strings.TrimSpace(c); c != "" {
			contacts = append(contacts, c)
		}
	}
	if len(contacts) == 0 {
		return "", fmt.Errorf("security.txt needs a contact")
	}

	var sb strings.Builder
	for _, c := range contacts {
		fmt.Fprintf(&sb, "Contact: %s\n", c)
	}
	expires := issued.UTC().Add(SecurityTxtLifetime).Truncate(24 * time.Hour)
	fmt.Fprintf(&sb, "Expires: %s\n", expires.Format(time.RFC3339))
	if len(s.Languages) > 0 {
		fmt.Fprintf(&sb, "Preferred-Languages: %s\n", strings.Join(s.Languages, ", "))
	}
	if s.Canonical != "" {
		fmt.Fprintf(&sb, "Canonical: %s\n", s.Canonical)
	}
	if s.Policy != "" {
		fmt.Fprintf(&sb, "Policy: %s\n", s.Policy)
	}
	return sb.String(), nil
}
