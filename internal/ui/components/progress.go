package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/parley/internal/ui/theme"
)

// ProgressBar shows how far through a list of questions, prompts or cards
// the user is, as "Label ━━━━──── 3/8".
type ProgressBar struct {
	Label string
	Done  int
	Total int
	Width int
}

func NewProgressBar(label string, done, total, width int) ProgressBar {
	return ProgressBar{Label: label, Done: done, Total: total, Width: width}
}

// Fraction returns Done/Total clamped to [0, 1].
func (p ProgressBar) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return min(max(float64(p.Done)/float64(p.Total), 0), 1)
}

func (p ProgressBar) View() string {
	label := lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label)
	count := lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("%d/%d", p.Done, p.Total))

	track := max(p.Width-lipgloss.Width(label)-lipgloss.Width(count)-2, 4)
	filled := int(float64(track)*p.Fraction() + 0.5)

	bar := theme.ProgressFilled.Render(strings.Repeat("━", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat("─", track-filled))
	return label + " " + bar + " " + count
}
