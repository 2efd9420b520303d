// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// helpMarkdown builds the help screen source from the key map.
func (m Model) helpMarkdown() string {
	var sb strings.Builder
	sb.WriteString("# link2clash\n\n")
	sb.WriteString("Paste subscription links into the input pane, one per line, and convert. ")
	sb.WriteString("The engine returns proxy entries and group members; when both are present ")
	sb.WriteString("they are assembled into a complete config.\n\n")
	sb.WriteString("## Keys\n\n")
	sb.WriteString("| Key | Action |\n|---|---|\n")
	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			h := b.Help()
			fmt.Fprintf(&sb, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	sb.WriteString("\n## Notes\n\n")
	sb.WriteString("- Rejected lines are listed below the panes as `#<line> <reason> (<value>)`.\n")
	sb.WriteString("- Clearing while a conversion is running discards its result.\n")
	sb.WriteString("- Copy uses the system clipboard, then OSC 52 through the terminal.\n")
	sb.WriteString("\nPress `?` or `Esc` to close.\n")
	return sb.String()
}

// renderHelp renders the help screen for the current width and theme.
func (m *Model) renderHelp() {
	md := m.helpMarkdown()

	style := "light"
	if m.theme.IsDark {
		style = "dark"
	}
	wrap := m.width - 4
	if wrap < 40 {
		wrap = 40
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		m.helpView = md
		return
	}
	out, err := r.Render(md)
	if err != nil {
		m.helpView = md
		return
	}
	m.helpView = out
}
