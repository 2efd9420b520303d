// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/link2clash-tui/internal/convert"
	"github.com/jeranaias/link2clash-tui/internal/ui/components"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case SubmitMsg:
		return m.submit(msg.Input)

	case ConvertDoneMsg:
		return m.convertDone(msg)

	case ClearMsg:
		return m.clearAll()

	case CopyMsg:
		return m, copyCmd(m.copier, m.copyText(msg.Target), msg.Target.Label())

	case CopyDoneMsg:
		kind := components.StatusError
		if msg.Outcome.Copied {
			kind = components.StatusSuccess
		} else if msg.Outcome.Err == nil {
			kind = components.StatusInfo
		}
		return m, m.status.Notify(msg.Outcome.Message, kind)

	case components.StatusHideMsg:
		m.status.Update(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.state.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.forwardToFocused(msg)
}

// =============================================================================
// INTENT HANDLERS
// =============================================================================

func (m Model) submit(input string) (tea.Model, tea.Cmd) {
	if m.state.Loading {
		log.Printf("CONVERT_IGNORED | reason=in_flight generation=%d", m.state.Generation)
		return m, nil
	}

	m.state.Loading = true
	m.state.Generation++
	m.state.Input = input
	m.state.Errors = nil
	m.errors = components.RenderErrors(nil)
	m.layout()

	log.Printf("CONVERT_START | generation=%d bytes=%d", m.state.Generation, len(input))
	return m, tea.Batch(
		convertCmd(m.converter, m.state.Generation, input),
		m.spinner.Tick,
	)
}

func (m Model) convertDone(msg ConvertDoneMsg) (tea.Model, tea.Cmd) {
	m.state.Loading = false

	if msg.Generation != m.state.Generation {
		log.Printf("CONVERT_STALE | generation=%d current=%d", msg.Generation, m.state.Generation)
		return m, nil
	}

	if msg.Err != nil {
		text := StatusNetworkError
		if convert.IsEngine(msg.Err) {
			text = StatusRequestFailed
			if engineMsg := convert.EngineMessage(msg.Err); engineMsg != "" {
				text = engineMsg
			}
		}
		log.Printf("CONVERT_FAILED | generation=%d error=%v", msg.Generation, msg.Err)
		return m, m.status.Notify(text, components.StatusError)
	}

	resp := msg.Response
	if resp == nil {
		resp = &convert.Response{}
	}

	m.state.Entries = resp.ProxyLines
	m.state.Groups = resp.GroupLines
	m.state.Errors = append([]convert.ItemError(nil), resp.Errors...)
	m.errors = components.RenderErrors(resp.Errors)

	if resp.Complete() {
		m.state.Document = Document{
			Populated: true,
			Text:      m.composer.Compose(resp.ProxyLines, resp.GroupLines),
		}
	}

	m.syncPanes()
	m.layout()

	log.Printf("CONVERT_DONE | generation=%d errors=%d composed=%v",
		msg.Generation, len(resp.Errors), resp.Complete())
	return m, m.status.Notify(StatusConversionDone, components.StatusSuccess)
}

func (m Model) clearAll() (tea.Model, tea.Cmd) {
	m.state.Generation++
	m.state.Input = ""
	m.state.Entries = ""
	m.state.Groups = ""
	m.state.Errors = nil
	m.state.Document = Document{Text: m.composer.Reset()}
	m.errors = components.RenderErrors(nil)
	m.input.Reset()

	m.syncPanes()
	m.layout()

	log.Printf("CLEAR | generation=%d in_flight=%v", m.state.Generation, m.state.Loading)
	return m, m.status.Notify(StatusCleared, components.StatusInfo)
}

// =============================================================================
// COMMANDS
// =============================================================================

// convertCmd runs one conversion and reports it as a ConvertDoneMsg.
func convertCmd(c Converter, generation int, input string) tea.Cmd {
	return func() tea.Msg {
		resp, err := c.Convert(context.Background(), input)
		return ConvertDoneMsg{Generation: generation, Response: resp, Err: err}
	}
}

// copyCmd copies text and reports the outcome as a CopyDoneMsg.
func copyCmd(c Copier, text, label string) tea.Cmd {
	return func() tea.Msg {
		return CopyDoneMsg{Outcome: c.Copy(text, label)}
	}
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.String() == "esc" || msg.String() == "q" {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.Update(SubmitMsg{Input: m.input.Value()})
	case key.Matches(msg, m.keys.Clear):
		return m.Update(ClearMsg{})
	case key.Matches(msg, m.keys.CopyEntries):
		return m.Update(CopyMsg{Target: TargetEntries})
	case key.Matches(msg, m.keys.CopyGroups):
		return m.Update(CopyMsg{Target: TargetGroups})
	case key.Matches(msg, m.keys.CopyConfig):
		return m.Update(CopyMsg{Target: TargetDocument})
	case key.Matches(msg, m.keys.Focus):
		if msg.String() == "shift+tab" {
			m.setFocus((m.focus + focusCount - 1) % focusCount)
		} else {
			m.setFocus((m.focus + 1) % focusCount)
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		// "?" is ordinary text while typing.
		if m.focus != FocusInput || msg.String() == "f1" {
			m.showHelp = true
			m.renderHelp()
			return m, nil
		}
	}

	return m.forwardToFocused(msg)
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	if f == FocusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// forwardToFocused hands msg to the focused bubble.
func (m Model) forwardToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FocusInput:
		m.input, cmd = m.input.Update(msg)
	case FocusEntries:
		m.entries, cmd = m.entries.Update(msg)
	case FocusGroups:
		m.groups, cmd = m.groups.Update(msg)
	case FocusDocument:
		m.document, cmd = m.document.Update(msg)
	}
	return m, cmd
}
