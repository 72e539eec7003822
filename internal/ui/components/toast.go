package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/parley/internal/notify"
	"github.com/abhisek/parley/internal/ui/theme"
)

// Toast renders a notification as a one-line banner.
func Toast(n notify.Notice, width int) string {
	icon := "•"
	var fg color.Color = theme.Secondary
	switch n.Kind {
	case notify.Success:
		icon, fg = "✓", theme.Success
	case notify.Warning:
		icon, fg = "!", theme.Warning
	case notify.Error:
		icon, fg = "✗", theme.Error
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(fg).
		Bold(true).
		Render(icon + " " + n.Text)
}
