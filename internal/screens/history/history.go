// Package history lists recent practice results from the local store.
package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/parley/internal/router"
	"github.com/abhisek/parley/internal/screen"
	"github.com/abhisek/parley/internal/session"
	"github.com/abhisek/parley/internal/similarity"
	"github.com/abhisek/parley/internal/store"
	"github.com/abhisek/parley/internal/ui/layout"
	"github.com/abhisek/parley/internal/ui/theme"
)

// pageSize is how many recent events are loaded.
const pageSize = 50

type historyLoadedMsg struct {
	Events []store.PracticeEvent
	Err    error
}

// HistoryScreen shows recent practice results, newest first. Tab cycles a
// section filter; Enter expands the highlighted row; P swaps history for
// the highlighted row's section.
type HistoryScreen struct {
	repo        store.EventRepo
	openSection func(session.Section) screen.Screen
	all         []store.PracticeEvent
	rows        []store.PracticeEvent
	filter      int // 0 is all sections, otherwise session.Sections[filter-1]
	cursor      int
	open        map[int64]bool
	loaded      bool
	err         error
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

// New builds the history screen. A nil openSection disables practice
// again.
func New(repo store.EventRepo, openSection func(session.Section) screen.Screen) *HistoryScreen {
	return &HistoryScreen{repo: repo, openSection: openSection, open: make(map[int64]bool)}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		events, err := repo.QueryPracticeEvents(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Tab", Description: "Filter"},
	}
	if s.openSection != nil {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Practice again"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		s.err = msg.Err
		s.all = msg.Events
		s.applyFilter()

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			s.cursor = max(s.cursor-1, 0)
		case "down", "j":
			s.cursor = max(min(s.cursor+1, len(s.rows)-1), 0)
		case "enter":
			if s.cursor < len(s.rows) {
				seq := s.rows[s.cursor].Sequence
				s.open[seq] = !s.open[seq]
			}
		case "tab":
			s.filter = (s.filter + 1) % (len(session.Sections) + 1)
			s.applyFilter()
		case "p":
			return s, s.practiceAgain()
		}
	}
	return s, nil
}

// practiceAgain replaces history with the highlighted row's section.
func (s *HistoryScreen) practiceAgain() tea.Cmd {
	if s.openSection == nil || s.cursor >= len(s.rows) {
		return nil
	}
	name := s.rows[s.cursor].Section
	for _, sec := range session.Sections {
		if sec.String() == name {
			next := s.openSection(sec)
			return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	}
	return nil
}

func (s *HistoryScreen) filterName() string {
	if s.filter == 0 {
		return "All sections"
	}
	return session.Sections[s.filter-1].Title()
}

func (s *HistoryScreen) applyFilter() {
	s.rows = s.rows[:0]
	for _, ev := range s.all {
		if s.filter == 0 || ev.Section == session.Sections[s.filter-1].String() {
			s.rows = append(s.rows, ev)
		}
	}
	s.cursor = 0
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(fg color.Color, text string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, lipgloss.NewStyle().Foreground(fg).Render(text))
	}
	switch {
	case s.err != nil:
		return "\n\n" + center(theme.Error, "Could not load history: "+s.err.Error())
	case !s.loaded:
		return "\n\n" + center(theme.TextDim, "Loading history...")
	case len(s.all) == 0:
		return "\n\n" + center(theme.TextDim, "No practice yet. Finish an activity and it shows up here.")
	}

	lines := []string{"", center(theme.Info, "‹ "+s.filterName()+" ›"), ""}
	if len(s.rows) == 0 {
		lines = append(lines, center(theme.TextDim, "Nothing practiced in this section yet."))
	}
	for i, ev := range s.rows {
		lines = append(lines, s.row(i, ev, width))
		if s.open[ev.Sequence] {
			for _, d := range details(ev) {
				lines = append(lines, center(theme.TextDim, d))
			}
		}
	}
	return strings.Join(visible(lines, s.cursorLine(), height), "\n")
}

func (s *HistoryScreen) row(i int, ev store.PracticeEvent, width int) string {
	text := lipgloss.NewStyle().Foreground(theme.Text)
	marker := "  "
	if i == s.cursor {
		text = theme.Selected
		marker = "› "
	}
	p := ev.Percent()
	line := text.Render(fmt.Sprintf("%s%s  %-10s %-9s %4d%%  ",
		marker, ev.Timestamp.Local().Format("Jan 02 15:04"), ev.Section, ev.Activity, p))
	line += lipgloss.NewStyle().Foreground(percentColor(p)).Render(bar(p))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

// cursorLine is the index in the rendered lines of the highlighted row.
func (s *HistoryScreen) cursorLine() int {
	n := 3
	for i, ev := range s.rows {
		if i == s.cursor {
			return n
		}
		n++
		if s.open[ev.Sequence] {
			n += len(details(ev))
		}
	}
	return n
}

// visible returns the window of lines of the given height that keeps
// line focus on screen.
func visible(lines []string, focus, height int) []string {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	start := min(max(focus-height/2, 0), len(lines)-height)
	return lines[start : start+height]
}

func details(ev store.PracticeEvent) []string {
	out := []string{fmt.Sprintf("Entry: %s", ev.EntryID)}
	if ev.Detail != "" {
		out = append(out, ev.Detail)
	}
	if ev.WPM > 0 {
		met := "target missed"
		if ev.TargetMet {
			met = "target met"
		}
		out = append(out, fmt.Sprintf("%d wpm at %d%% accuracy, %s", ev.WPM, ev.Accuracy, met))
	}
	if ev.Duration > 0 {
		secs := int(ev.Duration.Seconds())
		out = append(out, fmt.Sprintf("Took %d:%02d", secs/60, secs%60))
	}
	return out
}

// bar renders percent as five blocks.
func bar(percent int) string {
	filled := min(max((percent+10)/20, 0), 5)
	return strings.Repeat("■", filled) + strings.Repeat("□", 5-filled)
}

func percentColor(p int) color.Color {
	switch similarity.Tier(p) {
	case similarity.TierExcellent:
		return theme.Success
	case similarity.TierGood:
		return theme.Secondary
	case similarity.TierKeepPracticing:
		return theme.Warning
	default:
		return theme.Error
	}
}
