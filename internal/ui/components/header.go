// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/link2clash-tui/internal/ui/styles"
)

// compactHeaderWidth is the width below which the engine URL is dropped.
const compactHeaderWidth = 60

// Header is the one-line title bar: brand on the left, engine address or
// the in-flight indicator on the right.
type Header struct {
	Title     string
	EngineURL string

	// Activity replaces the engine address while a request is in flight.
	Activity string

	Width int
}

// NewHeader creates a header for the given engine address.
func NewHeader(engineURL string) Header {
	return Header{Title: "link2clash", EngineURL: engineURL}
}

// View renders the header at h.Width.
func (h Header) View(theme *styles.Theme) string {
	title := h.brand(theme)

	right := ""
	switch {
	case h.Activity != "":
		right = h.Activity
	case h.Width >= compactHeaderWidth:
		right = theme.HeaderHint.Render(h.EngineURL)
	}

	gap := h.Width - lipgloss.Width(title) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return theme.Header.Width(h.Width).Render(title + strings.Repeat(" ", gap) + right)
}

func (h Header) brand(theme *styles.Theme) string {
	if !lipgloss.HasDarkBackground() {
		return theme.HeaderTitle.Render(h.Title)
	}
	return theme.HeaderTitle.Render(GradientTitle(h.Title, styles.Cyan.Dark, styles.Purple.Dark))
}

// =============================================================================
// GRADIENT TITLE
// =============================================================================

// GradientTitle colors text character by character from startHex to endHex.
// Works best in terminals with true color support.
func GradientTitle(text, startHex, endHex string) string {
	if len(text) == 0 {
		return ""
	}

	chars := []rune(text)
	if len(chars) < 3 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(startHex)).Render(text)
	}

	var result strings.Builder
	n := len(chars)
	for i, char := range chars {
		t := float64(i) / float64(n-1)
		color := interpolateColor(startHex, endHex, t)
		result.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(char)))
	}
	return result.String()
}

// interpolateColor blends two #RRGGBB colors.
func interpolateColor(start, end string, t float64) lipgloss.Color {
	sr, sg, sb := parseHexColor(start)
	er, eg, eb := parseHexColor(end)

	r := uint8(float64(sr) + t*(float64(er)-float64(sr)))
	g := uint8(float64(sg) + t*(float64(eg)-float64(sg)))
	b := uint8(float64(sb) + t*(float64(eb)-float64(sb)))

	return lipgloss.Color(formatHexColor(r, g, b))
}

// parseHexColor parses #RRGGBB, defaulting to white.
func parseHexColor(hex string) (r, g, b uint8) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 255, 255, 255
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v)
}

func formatHexColor(r, g, b uint8) string {
	const hexChars = "0123456789ABCDEF"
	return "#" +
		string(hexChars[r>>4]) + string(hexChars[r&0xF]) +
		string(hexChars[g>>4]) + string(hexChars[g&0xF]) +
		string(hexChars[b>>4]) + string(hexChars[b&0xF])
}
