package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/parley/internal/ui/theme"
)

// Button is a labelled action shown with its key, such as "[r] Record".
type Button struct {
	Key      string
	Label    string
	Active   bool
	Disabled bool
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.Key != "" {
		label = "[" + b.Key + "] " + label
	}
	switch {
	case b.Disabled:
		return theme.ButtonInactive.Foreground(theme.TextDim).Render(label)
	case b.Active:
		return theme.ButtonActive.Render("▸ " + label)
	default:
		return theme.ButtonInactive.Render(label)
	}
}

// ButtonRow renders buttons side by side.
func ButtonRow(buttons ...Button) string {
	views := make([]string, 0, 2*len(buttons))
	for i, b := range buttons {
		if i > 0 {
			views = append(views, "  ")
		}
		views = append(views, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, views...)
}
