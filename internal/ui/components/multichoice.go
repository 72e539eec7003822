package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/parley/internal/ui/theme"
)

// MultiChoice renders a quiz question. Options are numbered from 1 to
// match the digit shortcuts. Chosen is -1 until an answer is picked.
type MultiChoice struct {
	Question string
	Options  []string
	Answer   int
	Cursor   int
	Chosen   int
	Revealed bool
}

func NewMultiChoice(question string, options []string, answer int) MultiChoice {
	return MultiChoice{Question: question, Options: options, Answer: answer, Chosen: -1}
}

// Correct reports whether a revealed answer was right.
func (m MultiChoice) Correct() bool {
	return m.Revealed && m.Chosen == m.Answer
}

func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	for i, opt := range m.Options {
		mark := "  "
		style := theme.Unselected
		switch {
		case m.Revealed && i == m.Answer:
			mark, style = "✓ ", theme.Correct
		case m.Revealed && i == m.Chosen:
			mark, style = "✗ ", theme.Incorrect
		case m.Revealed:
			style = dim
		case i == m.Chosen:
			mark, style = "● ", theme.Selected
		case i == m.Cursor:
			mark, style = "› ", theme.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%d. %s", mark, i+1, opt)))
		b.WriteString("\n")
	}
	return b.String()
}
