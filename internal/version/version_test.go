// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import (
	"runtime/debug"
	"testing"
)

func TestInfoString(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "v1.4.0", GitCommit: "abc1234", BuildTime: "2026-03-14T12:00:00Z"}, "counsel v1.4.0 (commit: abc1234, built: 2026-03-14T12:00:00Z)"},
		{Info{Version: "dev", GitCommit: "abc1234", Modified: true}, "counsel dev (commit: abc1234, built: unknown) +dirty"},
		{Info{}, "counsel unknown (commit: unknown, built: unknown)"},
	}
	for _, tt := range tests {
		if got := tt.info.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestAssetVersion(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"commit wins", Info{Version: "v1.0.0", GitCommit: "abc1234"}, "abc1234"},
		{"dirty tree", Info{GitCommit: "abc1234", Modified: true}, "abc1234-dirty"},
		{"unknown commit", Info{Version: "v1.0.0", GitCommit: "unknown"}, "v1.0.0"},
		{"zero value", Info{}, "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.AssetVersion(); got != tt.want {
				t.Errorf("AssetVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMergeBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Path: "github.com/olegiv/counsel-site", Version: "v1.2.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-03-01T08:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	got := Info{Version: "dev", GitCommit: "unknown", BuildTime: "unknown"}.merge(bi)
	want := Info{Version: "v1.2.0", GitCommit: "0123456", BuildTime: "2026-03-01T08:00:00Z", Modified: true}
	if got != want {
		t.Errorf("merge() = %+v, want %+v", got, want)
	}
}

func TestMergeKeepsLdflags(t *testing.T) {
	bi := &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "fffffff"}},
	}

	in := Info{Version: "v2.0.0", GitCommit: "abc1234", BuildTime: "2026-03-14T12:00:00Z"}
	if got := in.merge(bi); got != in {
		t.Errorf("merge() = %+v, want ldflags values kept", got)
	}
}

func TestMergeSkipsDevelVersion(t *testing.T) {
	got := Info{}.merge(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if got.Version != "" {
		t.Errorf("Version = %q, want empty for (devel)", got.Version)
	}
}
