// Package layout composes the header, body and footer of the parley frame.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/parley/internal/ui/theme"
)

const (
	MinWidth  = 72
	MinHeight = 22

	compactWidth  = 96
	compactHeight = 28
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// TooSmall reports whether the terminal cannot fit the frame.
func TooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// Compact reports whether screens should drop decorative blocks.
func Compact(width, height int) bool {
	return width < compactWidth || height < compactHeight
}

// TooSmallMessage asks the user to enlarge the terminal.
func TooSmallMessage(width, height int) string {
	msg := fmt.Sprintf("parley needs at least %d×%d\n(currently %d×%d)", MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Warning).Align(lipgloss.Center).Render(msg))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Padding(0, 1)

// Header renders the brand on the left, the screen title in the middle
// and status on the right.
func Header(title, status string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("◆ parley")
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-2, 0)
	middle := max(inner-lipgloss.Width(brand)-lipgloss.Width(right), 0)
	center := lipgloss.PlaceHorizontal(middle, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title))

	return bar.Width(width).Render(brand + center + right)
}

// Footer renders key hints separated by dots.
func Footer(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, key.Render(h.Key)+" "+desc.Render(h.Description))
	}
	return bar.Width(width).Render(strings.Join(parts, desc.Render("  ·  ")))
}

// BodyHeight is the height left for screen content between header and
// footer.
func BodyHeight(header, footer string, height int) int {
	return max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
}

// Frame stacks header, body and footer, padding the body to fill height.
func Frame(header, body, footer string, width, height int) string {
	body = lipgloss.NewStyle().
		Width(width).
		Height(BodyHeight(header, footer, height)).
		Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
