// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package clipboard copies text out of link2clash.
//
// A Service tries its strategies in order and stops at the first success:
// the system clipboard first, then an OSC 52 escape sequence written to the
// controlling terminal. Every attempt ends in a status line for the user;
// clipboard failures never propagate further than that.
package clipboard

import (
	"errors"
	"fmt"
	"log"
	"strings"
)

// Status lines reported for a copy attempt.
const (
	MsgNothingToCopy = "Nothing to copy."
	MsgCopyFailed    = "Copy failed."
)

// ErrUnavailable is returned by a strategy that cannot run on this system.
var ErrUnavailable = errors.New("clipboard unavailable")

// CopiedMessage returns the status line for a successful copy of label.
func CopiedMessage(label string) string {
	return "Copied " + label + "."
}

// =============================================================================
// STRATEGY
// =============================================================================

// Strategy is one way of putting text on the clipboard.
type Strategy interface {
	Name() string
	Copy(text string) error
}

// =============================================================================
// SERVICE
// =============================================================================

// Outcome describes a finished copy attempt.
type Outcome struct {
	Label    string
	Message  string // status line for the user
	Copied   bool
	Strategy string // name of the strategy that succeeded
	Err      error  // last strategy error when nothing succeeded
}

// Service copies text using an ordered list of strategies.
type Service struct {
	strategies []Strategy
}

// NewService creates a Service that tries strategies in the given order.
func NewService(strategies ...Strategy) *Service {
	return &Service{strategies: strategies}
}

// NewDefaultService returns the system clipboard backed by the terminal
// fallback, or the system clipboard alone when osc52 is false.
func NewDefaultService(osc52 bool) *Service {
	if !osc52 {
		return NewService(NewSystemClipboard())
	}
	return NewService(NewSystemClipboard(), NewTerminalClipboard())
}

// Strategies returns the strategy names in the order they are tried.
func (s *Service) Strategies() []string {
	names := make([]string, 0, len(s.strategies))
	for _, strategy := range s.strategies {
		names = append(names, strategy.Name())
	}
	return names
}

// Copy puts text on the clipboard. Blank text short-circuits without touching
// any strategy.
func (s *Service) Copy(text, label string) Outcome {
	if strings.TrimSpace(text) == "" {
		return Outcome{Label: label, Message: MsgNothingToCopy}
	}

	var lastErr error
	for _, strategy := range s.strategies {
		err := strategy.Copy(text)
		if err == nil {
			log.Printf("COPY | label=%s strategy=%s bytes=%d", label, strategy.Name(), len(text))
			return Outcome{
				Label:    label,
				Message:  CopiedMessage(label),
				Copied:   true,
				Strategy: strategy.Name(),
			}
		}
		log.Printf("COPY_FAILED | label=%s strategy=%s error=%v", label, strategy.Name(), err)
		lastErr = err
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no clipboard strategy configured: %w", ErrUnavailable)
	}
	return Outcome{Label: label, Message: MsgCopyFailed, Err: lastErr}
}
