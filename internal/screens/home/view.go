package home

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/parley/internal/ui/components"
	"github.com/abhisek/parley/internal/ui/theme"
)

const banner = `┌─┐┌─┐┬─┐┬  ┌─┐┬ ┬
├─┘├─┤├┬┘│  ├┤ └┬┘
┴  ┴ ┴┴└─┴─┘└─┘ ┴ `

const tagline = "practice speaking, grammar, typing and words"

// Mood picks the greeting shown in the speech bubble.
type Mood int

const (
	MoodWelcome Mood = iota // nothing practiced yet
	MoodOnStreak            // practiced within the last day
	MoodNudge               // practiced before, but not recently
)

func (m Mood) greeting(suggest string) string {
	switch m {
	case MoodOnStreak:
		return "Nice work today! One more round?"
	case MoodNudge:
		if suggest != "" {
			return fmt.Sprintf("Welcome back. %s could use some love.", suggest)
		}
		return "Welcome back. Ready to talk?"
	default:
		return "Hi! Pick a section and let's talk."
	}
}

func renderBanner(cw int, compact bool) string {
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if compact {
		return lipgloss.PlaceHorizontal(cw, lipgloss.Center, title.Render("◆ parley"))
	}
	sub := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, title.Render(banner), sub.Render(tagline)))
}

// renderBubble draws the greeting as a speech bubble with a tail.
func renderBubble(text string, mood Mood, cw int) string {
	fg := theme.Secondary
	switch mood {
	case MoodOnStreak:
		fg = theme.Success
	case MoodNudge:
		fg = theme.Accent
	}
	bubble := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(fg).
		Foreground(theme.Text).
		Padding(0, 2).
		Render(text)
	tail := lipgloss.NewStyle().Foreground(fg).Render("  ╰╮")
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, lipgloss.JoinVertical(lipgloss.Left, bubble, tail))
}

func renderStats(st summary, now time.Time, cw int) string {
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if st.Attempts == 0 {
		return lipgloss.PlaceHorizontal(cw, lipgloss.Center, dim.Render("No practice yet."))
	}
	figure := lipgloss.NewStyle().Foreground(theme.Info).Bold(true)
	parts := []string{
		figure.Render(fmt.Sprintf("%d", st.Attempts)) + dim.Render(" activities"),
		figure.Render(fmt.Sprintf("%.0f%%", st.AvgPercent)) + dim.Render(" average"),
		dim.Render("last ") + figure.Render(since(now, st.LastPracticed)),
	}
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, strings.Join(parts, dim.Render("  │  ")))
}

func since(now, last time.Time) string {
	switch days := int(now.Sub(last).Hours() / 24); days {
	case 0:
		return "today"
	case 1:
		return "yesterday"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

// menuWidth is the width of the non-compact menu buttons.
const menuWidth = 24

func renderMenu(m components.Menu, cw int, compact bool) string {
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, m.View(menuWidth, compact))
}
