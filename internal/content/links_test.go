// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import "testing"

func TestTelLink(t *testing.T) {
	tests := []struct {
		phone string
		want  string
	}{
		{"(555) 123-4567", "tel:5551234567"},
		{"+1 555.123.4567", "tel:15551234567"},
		{"555-CALL-NOW", "tel:555"},
		{"", "tel:"},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := TelLink(tt.phone); got != tt.want {
				t.Errorf("TelLink(%q) = %q, want %q", tt.phone, got, tt.want)
			}
		})
	}
}

func TestMailLink(t *testing.T) {
	if got := MailLink(" a@b.co "); got != "mailto:a@b.co" {
		t.Errorf("MailLink = %q, want %q", got, "mailto:a@b.co")
	}
}

func TestPriceLabel(t *testing.T) {
	tests := map[int]string{0: "$0", 90: "$90", 120: "$120"}
	for price, want := range tests {
		if got := PriceLabel(price); got != want {
			t.Errorf("PriceLabel(%d) = %q, want %q", price, got, want)
		}
	}
}

func TestInitial(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Amina R.", "A"},
		{"  omar", "O"},
		{"Élise", "É"},
		{"", "?"},
	}

	for _, tt := range tests {
		if got := Initial(tt.name); got != tt.want {
			t.Errorf("Initial(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestBookingLinks(t *testing.T) {
	b := Booking{
		Account:   "shaikh-counselor",
		EventType: "consultation",
		LinkBase:  "https://cal.com/",
		Embed:     EmbedConfig{Theme: "light"},
	}

	if got := b.CalLink(""); got != "shaikh-counselor/consultation" {
		t.Errorf("CalLink(\"\") = %q", got)
	}
	if got := b.CalLink("life-transitions"); got != "shaikh-counselor/life-transitions" {
		t.Errorf("CalLink(slug) = %q", got)
	}
	if got := b.PageURL(""); got != "https://cal.com/shaikh-counselor/consultation" {
		t.Errorf("PageURL = %q", got)
	}

	cfg, err := b.EmbedJSON()
	if err != nil {
		t.Fatalf("EmbedJSON: %v", err)
	}
	if cfg != `{"theme":"light","hideEventTypeDetails":false}` {
		t.Errorf("EmbedJSON = %s", cfg)
	}
}

func TestValidLink(t *testing.T) {
	tests := []struct {
		link string
		want bool
	}{
		{"/privacy", true},
		{"#contact", true},
		{"tel:5551234567", true},
		{"mailto:contact@example.com", true},
		{"https://maps.example.com/?q=Springfield", true},
		{"HTTPS://example.com", true},
		{"//evil.example", false},
		{"javascript:alert(1)", false},
		{"data:text/html,hi", false},
		{"privacy", false},
	}

	for _, tt := range tests {
		if got := validLink(tt.link); got != tt.want {
			t.Errorf("validLink(%q) = %v, want %v", tt.link, got, tt.want)
		}
	}
}
