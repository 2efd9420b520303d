// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package clipboard

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
)

// TerminalClipboard asks the terminal emulator to set the clipboard with an
// OSC 52 escape sequence. It works over SSH and inside multiplexers where no
// clipboard tool exists.
//
// Each Copy acquires a holder (by default the controlling terminal, opened
// for this one write) and releases it before returning, on every path.
type TerminalClipboard struct {
	// Open acquires the holder the sequence is written to.
	Open func() (io.WriteCloser, error)
	// Tmux wraps the sequence in a tmux passthrough.
	Tmux bool
	// Screen wraps the sequence in a GNU screen passthrough.
	Screen bool
}

// NewTerminalClipboard returns the fallback strategy for the current terminal.
func NewTerminalClipboard() *TerminalClipboard {
	return &TerminalClipboard{
		Open:   openTTY,
		Tmux:   os.Getenv("TMUX") != "",
		Screen: strings.HasPrefix(os.Getenv("TERM"), "screen"),
	}
}

// Name implements Strategy.
func (t *TerminalClipboard) Name() string {
	return "osc52"
}

// Copy implements Strategy.
func (t *TerminalClipboard) Copy(text string) (err error) {
	if t.Open == nil {
		return ErrUnavailable
	}

	holder, err := t.Open()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer func() {
		if closeErr := holder.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close terminal: %w", closeErr)
		}
	}()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("terminal copy aborted: %v", r)
		}
	}()

	seq := osc52.New(text)
	switch {
	case t.Tmux:
		seq = seq.Tmux()
	case t.Screen:
		seq = seq.Screen()
	}

	_, err = seq.WriteTo(holder)
	return err
}

func openTTY() (io.WriteCloser, error) {
	name := "/dev/tty"
	if runtime.GOOS == "windows" {
		name = "CONOUT$"
	}
	return os.OpenFile(name, os.O_WRONLY, 0)
}
