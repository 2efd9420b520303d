// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "monokai"

// Highlighter colors YAML for terminal display. The zero value is disabled
// and returns text unchanged.
type Highlighter struct {
	Enabled bool
	Style   string
}

// NewHighlighter creates a YAML highlighter with the named chroma style.
func NewHighlighter(enabled bool, style string) Highlighter {
	if style == "" {
		style = DefaultHighlightStyle
	}
	return Highlighter{Enabled: enabled, Style: style}
}

// Highlight returns text with ANSI colors applied. Highlighting never alters
// the underlying text; on any failure the plain text is returned.
func (h Highlighter) Highlight(text string) string {
	if !h.Enabled || text == "" {
		return text
	}

	lexer := lexers.Get("yaml")
	if lexer == nil {
		return text
	}
	lexer = chroma.Coalesce(lexer)

	style := chromaStyles.Get(h.Style)
	if style == nil {
		style = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return text
	}
	return buf.String()
}
