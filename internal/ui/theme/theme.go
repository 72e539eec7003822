// Package theme holds the parley palette and the shared lipgloss styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#6366F1") // indigo
	Secondary = lipgloss.Color("#2DD4BF") // mint
	Accent    = lipgloss.Color("#FB7185") // coral
	Success   = lipgloss.Color("#4ADE80")
	Warning   = lipgloss.Color("#FBBF24")
	Error     = lipgloss.Color("#EF4444")

	Text    = lipgloss.Color("#F1F5F9")
	TextDim = lipgloss.Color("#8892A6")
	BgDark  = lipgloss.Color("#111827")
	BgCard  = lipgloss.Color("#1F2937")
	Border  = lipgloss.Color("#374151")

	// Highlight marks the focused control; Info marks passive figures
	// such as the stats bar.
	Highlight = lipgloss.Color("#FDE047")
	Info      = lipgloss.Color("#38BDF8")
)

var (
	Selected = lipgloss.NewStyle().
			Foreground(Highlight).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Strikethrough(true)
)

// Typing practice characters.
var (
	CharPending  = lipgloss.NewStyle().Foreground(TextDim)
	CharMatch    = lipgloss.NewStyle().Foreground(Success)
	CharMismatch = lipgloss.NewStyle().Foreground(Text).Background(Error)
	CharCursor   = lipgloss.NewStyle().Foreground(BgDark).Background(Highlight)
)

var (
	ProgressFilled = lipgloss.NewStyle().Foreground(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Foreground(Border)

	ButtonActive = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Highlight).
			Bold(true).
			Padding(0, 1)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(Text).
			Background(BgCard).
			Padding(0, 1)
)
