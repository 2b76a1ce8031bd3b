// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"strings"
	"testing"
)

func TestRobotsPolicyPublic(t *testing.T) {
	got := RobotsPolicy{SiteURL: "https://shaikhcounseling.com/"}.String()

	want := "User-agent: *\n" +
		"Disallow: /live\n" +
		"Disallow: /health\n" +
		"Allow: /\n" +
		"\n" +
		"Sitemap: https://shaikhcounseling.com/sitemap.xml\n"
	if got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestRobotsPolicyStaging(t *testing.T) {
	got := RobotsPolicy{SiteURL: "https://staging.example.com", Staging: true}.String()

	if got != "User-agent: *\nDisallow: /\n" {
		t.Errorf("String() = %q", got)
	}
}

func TestRobotsPolicyPrivateAndBlocked(t *testing.T) {
	got := RobotsPolicy{
		Private: []string{"/assets/drafts"},
		Blocked: []string{"GPTBot", "CCBot"},
	}.String()

	for _, line := range []string{
		"User-agent: GPTBot\nDisallow: /\n",
		"User-agent: CCBot\nDisallow: /\n",
		"Disallow: /assets/drafts\n",
	} {
		if !strings.Contains(got, line) {
			t.Errorf("String() missing %q in\n%s", line, got)
		}
	}
	if strings.Index(got, "GPTBot") > strings.Index(got, "User-agent: *") {
		t.Error("specific agents should come before the wildcard group")
	}
	if strings.Contains(got, "Sitemap:") {
		t.Error("no sitemap line without a site URL")
	}
}

func TestRobotsPolicyWriteToCount(t *testing.T) {
	var sb strings.Builder
	n, err := RobotsPolicy{}.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if int(n) != sb.Len() {
		t.Errorf("WriteTo() = %d, wrote %d bytes", n, sb.Len())
	}
}
