// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/jeranaias/link2clash-tui/internal/clipboard"
	"github.com/jeranaias/link2clash-tui/internal/convert"
)

// =============================================================================
// STATUS TEXT
// =============================================================================

// Status lines reported by the orchestrator. Clipboard outcomes carry their
// own text (see package clipboard).
const (
	StatusConversionDone = "Conversion done."
	StatusNetworkError   = "Network error."
	StatusRequestFailed  = "Request failed."
	StatusCleared        = "Cleared."
	StatusConverting     = "Converting..."
)

// =============================================================================
// INTENTS
// =============================================================================

// SubmitMsg asks for Input to be converted. It is ignored while a
// conversion is already in flight.
type SubmitMsg struct {
	Input string
}

// ClearMsg resets every surface and restores the placeholder document.
type ClearMsg struct{}

// CopyTarget names a surface that can be copied.
type CopyTarget int

const (
	TargetEntries CopyTarget = iota
	TargetGroups
	TargetDocument
)

// Label returns the word used in the copy status line.
func (t CopyTarget) Label() string {
	switch t {
	case TargetEntries:
		return "proxies"
	case TargetGroups:
		return "groups"
	case TargetDocument:
		return "config"
	default:
		return "text"
	}
}

// ParseCopyTarget maps a label ("proxies", "groups", "config") back to its
// target.
func ParseCopyTarget(label string) (CopyTarget, bool) {
	switch label {
	case "proxies", "entries":
		return TargetEntries, true
	case "groups":
		return TargetGroups, true
	case "config", "document":
		return TargetDocument, true
	}
	return 0, false
}

// CopyMsg asks for the current text of Target to be copied.
type CopyMsg struct {
	Target CopyTarget
}

// =============================================================================
// RESULTS
// =============================================================================

// ConvertDoneMsg carries the result of the request started for Generation.
type ConvertDoneMsg struct {
	Generation int
	Response   *convert.Response
	Err        error
}

// CopyDoneMsg carries the outcome of a copy command.
type CopyDoneMsg struct {
	Outcome clipboard.Outcome
}
