// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TelLink builds a telephone action link with every non-digit stripped.
func TelLink(phone string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return "tel:" + digits
}

// MailLink builds a mail action link.
func MailLink(email string) string {
	return "mailto:" + strings.TrimSpace(email)
}

// PriceLabel formats a whole-dollar price.
func PriceLabel(price int) string {
	return "$" + strconv.Itoa(price)
}

// Initial returns the upper-cased first letter of name, used by placeholder badges.
func Initial(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "?"
	}
	r, _ := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r))
}

// EventTypeFor returns the booking event type for a service slug, falling back
// to the default event type when the slug is empty.
func (b Booking) EventTypeFor(slug string) string {
	if slug == "" {
		return b.EventType
	}
	return slug
}

// CalLink builds the provider link "<account>/<event-type>".
func (b Booking) CalLink(eventType string) string {
	return b.Account + "/" + b.EventTypeFor(eventType)
}

// PageURL is the provider's hosted booking page, used when the embed cannot run.
func (b Booking) PageURL(eventType string) string {
	return strings.TrimRight(b.LinkBase, "/") + "/" + b.CalLink(eventType)
}

// EmbedJSON encodes the embed configuration for the data-cal-config attribute.
func (b Booking) EmbedJSON() (string, error) {
	data, err := json.Marshal(b.Embed)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// TelLink is the practice phone as an action link.
func (m Metadata) TelLink() string {
	return TelLink(m.Phone)
}

// MailLink is the practice email as an action link.
func (m Metadata) MailLink() string {
	return MailLink(m.Email)
}
