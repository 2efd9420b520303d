// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"regexp"
	"strings"
	"testing"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestHighlighter_Disabled(t *testing.T) {
	text := "proxies:\n  - name: a\n"
	if got := (Highlighter{}).Highlight(text); got != text {
		t.Errorf("disabled highlighter changed text: %q", got)
	}
	if got := NewHighlighter(false, "").Highlight(text); got != text {
		t.Errorf("disabled highlighter changed text: %q", got)
	}
}

func TestHighlighter_PreservesText(t *testing.T) {
	text := "proxies:\n  - name: a\n\nrules:\n  - MATCH,PROXY\n"
	h := NewHighlighter(true, "")

	if h.Style != DefaultHighlightStyle {
		t.Errorf("Style = %q, want %q", h.Style, DefaultHighlightStyle)
	}

	plain := stripANSI(h.Highlight(text))
	for _, line := range []string{"proxies:", "  - name: a", "rules:", "  - MATCH,PROXY"} {
		if !strings.Contains(plain, line) {
			t.Errorf("highlighted output lost %q:\n%s", line, plain)
		}
	}
}

func TestHighlighter_UnknownStyleFallsBack(t *testing.T) {
	h := NewHighlighter(true, "no-such-style")
	plain := stripANSI(h.Highlight("a: b\n"))
	if !strings.Contains(plain, "a: b") {
		t.Errorf("fallback style lost text: %q", plain)
	}
}

func TestHighlighter_Empty(t *testing.T) {
	if got := NewHighlighter(true, "").Highlight(""); got != "" {
		t.Errorf("empty text should stay empty, got %q", got)
	}
}
