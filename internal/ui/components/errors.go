// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jeranaias/link2clash-tui/internal/convert"
	"github.com/jeranaias/link2clash-tui/internal/ui/styles"
	"github.com/jeranaias/link2clash-tui/internal/util"
)

// ErrorPanel is the rendered form of the per-item errors of one conversion.
// The zero value is the hidden panel.
type ErrorPanel struct {
	Rows []string
}

// RenderErrors builds the panel for errs. Rows follow input order and a new
// call replaces, never extends, a previous panel. A nil or empty list yields
// a hidden panel with no rows.
func RenderErrors(errs []convert.ItemError) ErrorPanel {
	if len(errs) == 0 {
		return ErrorPanel{}
	}
	rows := make([]string, len(errs))
	for i, e := range errs {
		rows[i] = FormatErrorRow(e)
	}
	return ErrorPanel{Rows: rows}
}

// FormatErrorRow formats one error as "#<index> <message>", followed by
// " (<value>)" only when the offending value is non-empty.
func FormatErrorRow(e convert.ItemError) string {
	var b strings.Builder
	b.WriteByte('#')
	b.WriteString(strconv.Itoa(e.Index))
	b.WriteByte(' ')
	b.WriteString(e.Message)
	if e.Value != "" {
		b.WriteString(" (")
		b.WriteString(e.Value)
		b.WriteByte(')')
	}
	return b.String()
}

// Visible reports whether the panel has anything to show.
func (p ErrorPanel) Visible() bool {
	return len(p.Rows) > 0
}

// Text returns the rows joined by newlines, without styling.
func (p ErrorPanel) Text() string {
	return strings.Join(p.Rows, "\n")
}

// View renders the panel in a bordered box. Rows longer than width are
// truncated and at most maxRows rows are drawn (all when maxRows <= 0);
// a hidden panel renders as an empty string.
func (p ErrorPanel) View(theme *styles.Theme, width, maxRows int) string {
	if !p.Visible() {
		return ""
	}

	inner := width - 4 // border and padding
	title := theme.ErrorTitle.Render(fmt.Sprintf("%s %d rejected", styles.StatusIndicators.Error, len(p.Rows)))

	rows := p.Rows
	hidden := 0
	if maxRows > 0 && len(rows) > maxRows {
		hidden = len(rows) - maxRows + 1
		rows = rows[:maxRows-1]
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, title)
	for _, row := range rows {
		if inner > 0 {
			row = util.TruncateWidth(row, inner)
		}
		lines = append(lines, theme.ErrorRow.Render(row))
	}
	if hidden > 0 {
		lines = append(lines, theme.Placeholder.Render(fmt.Sprintf("... and %d more", hidden)))
	}

	box := theme.ErrorPanel
	if width > 2 {
		box = box.Width(width - 2)
	}
	return box.Render(strings.Join(lines, "\n"))
}
