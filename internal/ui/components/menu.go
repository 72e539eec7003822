package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/parley/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Key is an optional shortcut that
// selects and triggers the item directly.
type MenuItem struct {
	Label  string
	Key    string
	Action func() tea.Cmd
}

// Menu is a vertical list of actions. Navigation wraps around.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update moves the selection or runs an action.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch k := key.String(); k {
	case "up", "k":
		m.Selected = (m.Selected - 1 + len(m.Items)) % len(m.Items)
	case "down", "j":
		m.Selected = (m.Selected + 1) % len(m.Items)
	case "enter":
		return m, m.run(m.Selected)
	default:
		for i, item := range m.Items {
			if item.Key != "" && item.Key == k {
				m.Selected = i
				return m, m.run(i)
			}
		}
	}
	return m, nil
}

func (m Menu) run(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) || m.Items[i].Action == nil {
		return nil
	}
	return m.Items[i].Action()
}

// View renders the items as buttons of the given width. Compact menus
// render one plain line per item.
func (m Menu) View(width int, compact bool) string {
	lines := make([]string, 0, len(m.Items))
	shortcut := lipgloss.NewStyle().Foreground(theme.TextDim)
	for i, item := range m.Items {
		label := item.Label
		if item.Key != "" {
			label = shortcut.Render(item.Key+" ") + label
		}
		switch {
		case !compact:
			lines = append(lines, MenuButton(item.Label, i == m.Selected, width))
		case i == m.Selected:
			lines = append(lines, theme.Selected.Render("› "+label))
		default:
			lines = append(lines, theme.Unselected.Render("  "+label))
		}
	}
	return strings.Join(lines, "\n")
}
