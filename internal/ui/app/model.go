// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app provides the converter screen of the link2clash TUI.
//
// Model is the only owner of the conversion State. User intents and
// request results arrive as messages and are applied in Update; the HTTP
// request and the clipboard write run as tea.Cmds off the event loop.
package app

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/link2clash-tui/internal/clipboard"
	"github.com/jeranaias/link2clash-tui/internal/compose"
	"github.com/jeranaias/link2clash-tui/internal/convert"
	"github.com/jeranaias/link2clash-tui/internal/ui/components"
	"github.com/jeranaias/link2clash-tui/internal/ui/styles"
)

// =============================================================================
// COLLABORATORS
// =============================================================================

// Converter sends raw input to the conversion engine.
type Converter interface {
	Convert(ctx context.Context, input string) (*convert.Response, error)
}

// Copier puts text on the clipboard and reports the outcome.
type Copier interface {
	Copy(text, label string) clipboard.Outcome
}

// =============================================================================
// STATE
// =============================================================================

// Document is the composed configuration shown to the user. Before the
// first complete conversion, and after a clear, it holds the placeholder.
type Document struct {
	Populated bool
	Text      string
}

// State is everything the converter screen knows about the current session.
type State struct {
	Loading    bool
	Generation int // bumped by every submit and clear
	Input      string
	Entries    string
	Groups     string
	Errors     []convert.ItemError
	Document   Document
}

// Focus identifies the pane receiving navigation keys.
type Focus int

const (
	FocusInput Focus = iota
	FocusEntries
	FocusGroups
	FocusDocument
	focusCount
)

// =============================================================================
// MODEL
// =============================================================================

// Options configures a Model. Nil collaborators are replaced by defaults.
type Options struct {
	Theme       *styles.Theme
	Converter   Converter
	Copier      Copier
	Composer    *compose.Composer
	StatusDelay time.Duration
	Highlighter components.Highlighter
	EngineURL   string // shown in the header
}

// Model is the Bubble Tea model for the converter screen.
type Model struct {
	state State

	converter Converter
	copier    Copier
	composer  *compose.Composer

	theme     *styles.Theme
	status    components.StatusNotifier
	errors    components.ErrorPanel
	highlight components.Highlighter
	engineURL string

	input    textarea.Model
	entries  viewport.Model
	groups   viewport.Model
	document viewport.Model
	spinner  spinner.Model
	help     help.Model
	keys     KeyMap

	focus    Focus
	showHelp bool
	helpView string

	width  int
	height int
}

// New creates the converter screen.
func New(opts Options) Model {
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme(styles.ModeAuto)
	}
	if opts.Converter == nil {
		opts.Converter = convert.NewClient()
	}
	if opts.Copier == nil {
		opts.Copier = clipboard.NewDefaultService(true)
	}
	if opts.Composer == nil {
		opts.Composer = compose.NewDefault()
	}

	ti := textarea.New()
	ti.Placeholder = "Paste subscription links, one per line..."
	ti.ShowLineNumbers = true
	ti.CharLimit = 0
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	sp.Style = opts.Theme.StatusPending

	m := Model{
		state: State{
			Document: Document{Text: opts.Composer.Reset()},
		},
		converter: opts.Converter,
		copier:    opts.Copier,
		composer:  opts.Composer,
		theme:     opts.Theme,
		status:    components.NewStatusNotifier(opts.StatusDelay),
		highlight: opts.Highlighter,
		engineURL: opts.EngineURL,
		input:     ti,
		entries:   viewport.New(40, 5),
		groups:    viewport.New(40, 5),
		document:  viewport.New(40, 10),
		spinner:   sp,
		help:      help.New(),
		keys:      DefaultKeyMap(),
	}
	m.syncPanes()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// State returns a copy of the current state.
func (m Model) State() State {
	s := m.state
	s.Errors = append([]convert.ItemError(nil), m.state.Errors...)
	return s
}

// ErrorPanel returns the error rows currently displayed.
func (m Model) ErrorPanel() components.ErrorPanel {
	return m.errors
}

// Status returns the status notifier.
func (m Model) Status() components.StatusNotifier {
	return m.status
}

// Focused returns the pane that receives navigation keys.
func (m Model) Focused() Focus {
	return m.focus
}

// copyText returns the text a copy of target would place on the clipboard.
// The placeholder document is guidance, not configuration, and copies as
// empty.
func (m Model) copyText(target CopyTarget) string {
	switch target {
	case TargetEntries:
		return m.state.Entries
	case TargetGroups:
		return m.state.Groups
	case TargetDocument:
		if m.state.Document.Populated {
			return m.state.Document.Text
		}
	}
	return ""
}
