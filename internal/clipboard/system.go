// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package clipboard

import (
	"github.com/atotto/clipboard"
)

// SystemClipboard writes through the platform clipboard tool
// (pbcopy, xclip/xsel/wl-copy, or the Windows API).
type SystemClipboard struct {
	writeAll    func(string) error
	unsupported func() bool
}

// NewSystemClipboard returns the primary strategy.
func NewSystemClipboard() *SystemClipboard {
	return &SystemClipboard{
		writeAll:    clipboard.WriteAll,
		unsupported: func() bool { return clipboard.Unsupported },
	}
}

// Name implements Strategy.
func (s *SystemClipboard) Name() string {
	return "system"
}

// Copy implements Strategy.
func (s *SystemClipboard) Copy(text string) error {
	if s.unsupported() {
		return ErrUnavailable
	}
	return s.writeAll(text)
}
