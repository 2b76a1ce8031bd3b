// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package themes embeds the core theme into the binary.
package themes

import "embed"

// FS contains the embedded core theme (counsel). It is available without
// any external files; a custom theme directory may override it.
//
//go:embed all:counsel
var FS embed.FS
