// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version describes the running build.
package version

import (
	"fmt"
	"runtime/debug"
)

const unknown = "unknown"

// Info is set from ldflags. Fields left empty or "unknown" are filled from
// the module build info by Resolve.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	Modified  bool   `json:"modified,omitempty"` // built from a dirty tree
}

// Resolve fills missing fields from the binary's embedded build info.
func (i Info) Resolve() Info {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return i
	}
	return i.merge(bi)
}

func (i Info) merge(bi *debug.BuildInfo) Info {
	if (isUnset(i.Version) || i.Version == "dev") && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if isUnset(i.GitCommit) && s.Value != "" {
				i.GitCommit = s.Value[:min(7, len(s.Value))]
			}
		case "vcs.time":
			if isUnset(i.BuildTime) {
				i.BuildTime = s.Value
			}
		case "vcs.modified":
			i.Modified = i.Modified || s.Value == "true"
		}
	}
	return i
}

func isUnset(v string) bool { return v == "" || v == unknown }

// String formats the info for the -v flag.
func (i Info) String() string {
	s := fmt.Sprintf("counsel %s (commit: %s, built: %s)", orUnknown(i.Version), orUnknown(i.GitCommit), orUnknown(i.BuildTime))
	if i.Modified {
		s += " +dirty"
	}
	return s
}

// AssetVersion returns the cache-busting token appended to static asset URLs.
func (i Info) AssetVersion() string {
	switch {
	case !isUnset(i.GitCommit) && i.Modified:
		return i.GitCommit + "-dirty"
	case !isUnset(i.GitCommit):
		return i.GitCommit
	case !isUnset(i.Version):
		return i.Version
	}
	return "dev"
}

func orUnknown(v string) string {
	if v == "" {
		return unknown
	}
	return v
}
