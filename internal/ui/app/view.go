// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/link2clash-tui/internal/ui/components"
	"github.com/jeranaias/link2clash-tui/internal/ui/styles"
	"github.com/jeranaias/link2clash-tui/internal/util"
)

const (
	// chromeHeight is the header, status bar and key hint line.
	chromeHeight = 3
	// paneFrame is the border plus the title line of a pane.
	paneFrame = 3
	// stackedInputHeight is the input height in the stacked layout.
	stackedInputHeight = 6
	// maxErrorRows caps the error panel so the panes stay usable.
	maxErrorRows = 6
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.helpView
	}

	sections := []string{m.viewHeader(), m.viewBody()}
	if m.errors.Visible() {
		sections = append(sections, m.viewErrors())
	}
	sections = append(sections, m.viewStatus(), m.viewHints())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) viewHeader() string {
	h := components.NewHeader(m.engineURL)
	h.Width = m.width
	if m.state.Loading {
		h.Activity = m.spinner.View() + " " + m.theme.StatusPending.Render(StatusConverting)
	}
	return h.View(m.theme)
}

func (m Model) viewBody() string {
	inputW, outputW := m.columnWidths()

	inputPane := m.pane("Input", m.input.View(), inputW, m.focus == FocusInput)
	outputs := lipgloss.JoinVertical(lipgloss.Left,
		m.pane("Proxies", m.entries.View(), outputW, m.focus == FocusEntries),
		m.pane("Group members", m.groups.View(), outputW, m.focus == FocusGroups),
		m.pane(m.documentTitle(), m.document.View(), outputW, m.focus == FocusDocument),
	)

	if m.theme.GetLayoutMode() == styles.LayoutStacked {
		return lipgloss.JoinVertical(lipgloss.Left, inputPane, outputs)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, inputPane, outputs)
}

func (m Model) documentTitle() string {
	if m.state.Document.Populated {
		return "Config"
	}
	return "Config (example)"
}

// pane draws a bordered box of total width w around content.
func (m Model) pane(title, content string, w int, focused bool) string {
	style := m.theme.Pane
	if focused {
		style = m.theme.PaneFocused
	}
	if w > 2 {
		style = style.Width(w - 2)
	}
	return style.Render(m.theme.PaneTitle.Render(title) + "\n" + content)
}

func (m Model) viewErrors() string {
	return m.errors.View(m.theme, m.width, maxErrorRows)
}

func (m Model) viewStatus() string {
	line := m.status.View(m.theme, m.width-2)
	return m.theme.StatusBar.Width(m.width).Render(line)
}

func (m Model) viewHints() string {
	m.help.Width = m.width
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

// =============================================================================
// LAYOUT
// =============================================================================

// columnWidths returns the total widths of the input and output columns.
func (m Model) columnWidths() (int, int) {
	if m.theme.GetLayoutMode() == styles.LayoutStacked {
		return m.width, m.width
	}
	inputW := m.width * 2 / 5
	return inputW, m.width - inputW
}

// layout sizes every bubble for the current window and error panel.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	m.theme.SetSize(m.width, m.height)

	bodyH := m.height - chromeHeight
	if rows := len(m.errors.Rows); rows > 0 {
		bodyH -= min(rows, maxErrorRows) + 3
	}
	if bodyH < 12 {
		bodyH = 12
	}

	inputW, outputW := m.columnWidths()
	outputsH := bodyH
	inputH := bodyH - paneFrame
	if m.theme.GetLayoutMode() == styles.LayoutStacked {
		inputH = stackedInputHeight
		outputsH = bodyH - stackedInputHeight - paneFrame
	}

	m.input.SetWidth(max(inputW-4, 10))
	m.input.SetHeight(max(inputH, 3))

	// Fragments get a quarter each, the document the rest.
	fragH := max(outputsH/4-paneFrame, 2)
	docH := max(outputsH-2*(fragH+paneFrame)-paneFrame, 3)
	paneW := max(outputW-4, 10)
	m.entries.Width, m.entries.Height = paneW, fragH
	m.groups.Width, m.groups.Height = paneW, fragH
	m.document.Width, m.document.Height = paneW, docH

	m.syncPanes()
}

// syncPanes pushes state text into the viewports.
func (m *Model) syncPanes() {
	m.entries.SetContent(m.fragment(m.state.Entries))
	m.groups.SetContent(m.fragment(m.state.Groups))

	if m.state.Document.Populated {
		m.document.SetContent(m.highlight.Highlight(m.state.Document.Text))
	} else {
		m.document.SetContent(m.theme.Placeholder.Render(m.state.Document.Text))
	}
}

func (m Model) fragment(text string) string {
	if text == "" {
		return m.theme.Placeholder.Render("(empty)")
	}
	width := m.entries.Width
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = util.TruncateWidth(line, width)
	}
	return strings.Join(lines, "\n")
}
