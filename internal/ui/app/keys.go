// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keyboard bindings of the converter screen.
type KeyMap struct {
	Submit      key.Binding
	Clear       key.Binding
	CopyEntries key.Binding
	CopyGroups  key.Binding
	CopyConfig  key.Binding
	Focus       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("C-s", "convert"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear"),
		),
		CopyEntries: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("C-p", "copy proxies"),
		),
		CopyGroups: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("C-g", "copy groups"),
		),
		CopyConfig: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy config"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("Tab", "switch pane"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1", "?"),
			key.WithHelp("?/F1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Clear, k.CopyConfig, k.Focus, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Clear},
		{k.CopyEntries, k.CopyGroups, k.CopyConfig},
		{k.Focus, k.Help, k.Quit},
	}
}
