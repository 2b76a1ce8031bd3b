// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package uikit provides the template helpers shared by every theme.
package uikit

import (
	"html/template"
	"net/url"
	"strings"
)

// blockedURL replaces links whose scheme is not allowed.
const blockedURL = template.URL("#")

// linkSchemes are the schemes safeURL passes through. html/template on its
// own only trusts http, https and mailto, which would blank out tel: links.
var linkSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

// TemplateFuncs returns the helpers themes may call. Callers merge
// site-specific functions on top:
//
//	funcs := uikit.TemplateFuncs()
//	funcs["icon"] = iconFunc
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"safeURL": SafeURL,
		"dict":    Dict,
	}
}

// SafeURL marks a link as trusted when it is relative or uses one of the
// allowed schemes. Anything else renders as "#".
func SafeURL(s string) template.URL {
	s = strings.TrimSpace(s)
	if s == "" {
		return blockedURL
	}
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "#") {
		if strings.HasPrefix(s, "//") {
			return blockedURL
		}
		return template.URL(s)
	}

	u, err := url.Parse(s)
	if err != nil || !linkSchemes[strings.ToLower(u.Scheme)] {
		return blockedURL
	}
	return template.URL(s)
}

// Dict builds a map from alternating keys and values so a partial can take
// several named arguments: {{template "trigger.html" dict "Trigger" .Book "Class" "btn"}}.
// Odd argument lists yield nil and non-string keys are skipped.
func Dict(values ...any) map[string]any {
	if len(values)%2 != 0 {
		return nil
	}
	dict := make(map[string]any, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		key, ok := values[i].(string)
		if !ok {
			continue
		}
		dict[key] = values[i+1]
	}
	return dict
}
