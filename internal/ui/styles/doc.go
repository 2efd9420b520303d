// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the link2clash TUI.

# Color System (colors.go)

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection:

  - Purple - Focused pane border and titles
  - Cyan - Brand color, pane titles and key hints
  - Emerald - Success states
  - Amber - In-flight conversion
  - Rose - Rejected items and failures

Status lines always carry an ASCII indicator ([OK], [X], [!], [i]) so that
meaning never depends on color alone.

# Theme (theme.go)

NewTheme builds every lipgloss.Style the TUI renders with. The mode comes
from the [ui] theme setting:

	theme := styles.NewTheme("auto") // detect via termenv
	theme := styles.NewTheme("dark") // force the dark palette

Layout switches between a stacked and a side-by-side arrangement at 80
columns (see GetLayoutMode).
*/
package styles
