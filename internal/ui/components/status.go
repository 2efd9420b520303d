// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/link2clash-tui/internal/ui/styles"
	"github.com/jeranaias/link2clash-tui/internal/util"
)

// DefaultStatusDelay is how long a status line stays visible.
const DefaultStatusDelay = 2200 * time.Millisecond

// StatusKind selects the indicator and color of a status line.
type StatusKind int

const (
	// StatusInfo is a neutral message (cyan)
	StatusInfo StatusKind = iota
	// StatusSuccess is a completed action (emerald)
	StatusSuccess
	// StatusError is a failed action (rose)
	StatusError
	// StatusPending is work in flight (amber)
	StatusPending
)

// StatusHideMsg asks the notifier to hide the message it showed as ID.
type StatusHideMsg struct {
	ID int
}

// StatusNotifier shows one transient status line at a time.
//
// Every Notify replaces the previous message and restarts the hide timer:
// a hide scheduled by an earlier Notify carries a stale ID and is ignored,
// so only the newest message controls when the surface disappears.
type StatusNotifier struct {
	// Delay before the surface hides. Zero means DefaultStatusDelay.
	Delay time.Duration

	id      int
	message string
	kind    StatusKind
	visible bool
}

// NewStatusNotifier creates a notifier with the given hide delay.
func NewStatusNotifier(delay time.Duration) StatusNotifier {
	return StatusNotifier{Delay: delay}
}

// Notify shows message and returns the command that will hide it.
func (n *StatusNotifier) Notify(message string, kind StatusKind) tea.Cmd {
	n.id++
	n.message = message
	n.kind = kind
	n.visible = true

	id := n.id
	return tea.Tick(n.delay(), func(time.Time) tea.Msg {
		return StatusHideMsg{ID: id}
	})
}

// Update applies a hide request. It reports whether the surface was hidden.
func (n *StatusNotifier) Update(msg StatusHideMsg) bool {
	if msg.ID != n.id || !n.visible {
		return false
	}
	n.visible = false
	return true
}

// Visible reports whether the status surface is shown.
func (n StatusNotifier) Visible() bool {
	return n.visible
}

// Message returns the most recent status text, visible or not.
func (n StatusNotifier) Message() string {
	return n.message
}

// Kind returns the kind of the most recent message.
func (n StatusNotifier) Kind() StatusKind {
	return n.kind
}

// ID returns the identifier of the most recent Notify.
func (n StatusNotifier) ID() int {
	return n.id
}

func (n StatusNotifier) delay() time.Duration {
	if n.Delay <= 0 {
		return DefaultStatusDelay
	}
	return n.Delay
}

// View renders the status line within width columns. A hidden surface
// renders as an empty string.
func (n StatusNotifier) View(theme *styles.Theme, width int) string {
	if !n.visible || n.message == "" {
		return ""
	}

	indicator, style := styles.StatusIndicators.Info, theme.StatusInfo
	switch n.kind {
	case StatusSuccess:
		indicator, style = styles.StatusIndicators.Success, theme.StatusSuccess
	case StatusError:
		indicator, style = styles.StatusIndicators.Error, theme.StatusError
	case StatusPending:
		indicator, style = styles.StatusIndicators.Pending, theme.StatusPending
	}

	line := indicator + " " + n.message
	if width > 0 {
		line = util.TruncateWidth(line, width)
	}
	return style.Render(line)
}
