// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the display pieces of the link2clash TUI.

Components receive plain values and return rendered strings; none of them
holds a reference to the application state.

# StatusNotifier (status.go)

A single transient status line. Notify returns a tea.Cmd that fires a
StatusHideMsg after the configured delay; only the hide belonging to the
newest message takes effect:

	cmd := m.status.Notify("Conversion done.", components.StatusSuccess)
	...
	case components.StatusHideMsg:
	    m.status.Update(msg)

# ErrorPanel (errors.go)

RenderErrors turns the engine's per-item errors into display rows of the
form "#<index> <message> (<value>)". An empty list yields a hidden panel.

# Header (header.go)

The title bar. The engine address on the right gives way to the spinner
while a conversion is in flight, and is dropped on narrow terminals.

# Highlighter (highlight.go)

Chroma based YAML coloring for the document and fragment panes.
*/
package components
