// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"fmt"
	"io"
	"strings"
)

// MachinePaths are served to scripts and probes, never to readers.
var MachinePaths = []string{"/live", "/health"}

// RobotsPolicy describes what crawlers may fetch.
type RobotsPolicy struct {
	SiteURL string

	// Staging hides the whole site and drops the sitemap line.
	Staging bool

	// Private paths are disallowed for every agent on top of MachinePaths.
	Private []string

	// Blocked agents are refused the whole site, e.g. "GPTBot".
	Blocked []string
}

// WriteTo renders the policy in robots.txt syntax.
func (p RobotsPolicy) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder

	for _, agent := range p.Blocked {
		fmt.Fprintf(&sb, "User-agent: %s\nDisallow: /\n\n", agent)
	}

	sb.WriteString("User-agent: *\n")
	if p.Staging {
		sb.WriteString("Disallow: /\n")
	} else {
		for _, path := range MachinePaths {
			fmt.Fprintf(&sb, "Disallow: %s\n", path)
		}
		for _, path := range p.Private {
			fmt.Fprintf(&sb, "Disallow: %s\n", path)
		}
		sb.WriteString("Allow: /\n")

		if p.SiteURL != "" {
			fmt.Fprintf(&sb, "\nSitemap: %s/sitemap.xml\n", strings.TrimRight(p.SiteURL, "/"))
		}
	}

	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}

// String returns the rendered robots.txt.
func (p RobotsPolicy) String() string {
	var sb strings.Builder
	_, _ = p.WriteTo(&sb)
	return sb.String()
}
