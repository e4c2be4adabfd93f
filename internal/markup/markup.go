// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package markup renders editor-supplied Markdown to HTML that is safe to
// embed in public pages.
package markup

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// policy allows the usual user-generated content tags and strips scripts,
// event handlers and javascript: URLs.
var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}()

// Render converts Markdown to sanitized HTML. Empty input yields "".
// Raw HTML inside the Markdown goes through the same sanitizer.
func Render(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		// goldmark only fails on writer errors; fall back to escaped text
		slog.Warn("markdown conversion failed", "error", err)
		return policy.Sanitize("<p>" + htmlEscape(src) + "</p>")
	}
	return strings.TrimSpace(string(policy.SanitizeBytes(buf.Bytes())))
}

// Sanitize strips unsafe markup from an HTML fragment.
func Sanitize(fragment string) string {
	return policy.Sanitize(fragment)
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&#34;", "'", "&#39;")

func htmlEscape(s string) string {
	return escaper.Replace(s)
}
