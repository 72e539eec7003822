package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/parley/internal/ui/theme"
)

// CardWidth is the inner width shared by every block on a screen, so
// cards and buttons line up.
func CardWidth(frameWidth int) int {
	return min(max(frameWidth-8, 24), 64)
}

// Panel centers content inside a rounded border filling width × height.
func Panel(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card renders content with a coloured bar on its left edge, the way lesson
// text and prompts are shown.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(theme.Secondary).
		Background(theme.BgCard).
		Width(cw).
		Padding(1, 2).
		Render(content)
}

// MenuButton renders one full-width choice in a vertical menu.
func MenuButton(label string, selected bool, width int) string {
	style := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if selected {
		return style.Inherit(theme.ButtonActive).Render("› " + label + " ‹")
	}
	return style.Inherit(theme.ButtonInactive).Render(label)
}
