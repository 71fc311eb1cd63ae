// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Palette for CLI output, tuned for dark terminal backgrounds.
const (
	// ColorPrimary is purple, used for the product name in help output.
	ColorPrimary = lipgloss.Color("#7C3AED")

	// ColorMuted is gray, used for secondary help text.
	ColorMuted = lipgloss.Color("#6B7280")

	// ColorError is red, used for failure output.
	ColorError = lipgloss.Color("#EF4444")

	// ColorHighlight is blue, used for example command lines.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle renders the product name.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle renders section headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// ErrorStyle renders the error label on run failures.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// CmdStyle renders invocable command lines in help text.
	CmdStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)
)
