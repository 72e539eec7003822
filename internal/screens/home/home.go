package home

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/parley/internal/router"
	"github.com/abhisek/parley/internal/screen"
	"github.com/abhisek/parley/internal/session"
	"github.com/abhisek/parley/internal/store"
	"github.com/abhisek/parley/internal/ui/components"
	"github.com/abhisek/parley/internal/ui/layout"
)

// Options wires the home screen to the rest of the application.
type Options struct {
	// OpenSection builds the practice screen for a section.
	OpenSection func(session.Section) screen.Screen

	// OpenHistory builds the history screen. Nil hides the entry.
	OpenHistory func() screen.Screen

	// Repo supplies the stats line. Nil shows no stats.
	Repo store.EventRepo

	Now func() time.Time
}

type statsLoadedMsg struct {
	Stats []store.SectionStats
	Err   error
}

// summary totals practice across sections.
type summary struct {
	Attempts      int
	AvgPercent    float64
	LastPracticed time.Time
	// Weakest is the section with the lowest average, if more than one
	// section has been practiced.
	Weakest string
}

func summarize(stats []store.SectionStats) summary {
	var (
		s        summary
		weighted float64
		lowest   = 101.0
	)
	for _, st := range stats {
		s.Attempts += st.Attempts
		weighted += st.AvgPercent * float64(st.Attempts)
		if st.LastPracticed.After(s.LastPracticed) {
			s.LastPracticed = st.LastPracticed
		}
		if st.AvgPercent < lowest {
			lowest = st.AvgPercent
			s.Weakest = st.Section
		}
	}
	if s.Attempts > 0 {
		s.AvgPercent = weighted / float64(s.Attempts)
	}
	if len(stats) < 2 {
		s.Weakest = ""
	}
	return s
}

// HomeScreen is the main menu.
type HomeScreen struct {
	opts  Options
	menu  components.Menu
	stats summary
}

var (
	_ screen.Screen  = (*HomeScreen)(nil)
	_ screen.Resumer = (*HomeScreen)(nil)
)

func New(opts Options) *HomeScreen {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	var items []components.MenuItem
	for i, sec := range session.Sections {
		items = append(items, components.MenuItem{
			Label: sec.Title(),
			Key:   strconv.Itoa(i + 1),
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.PushScreenMsg{Screen: opts.OpenSection(sec)} }
			},
		})
	}
	if opts.OpenHistory != nil {
		items = append(items, components.MenuItem{
			Label: "History",
			Key:   "h",
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.PushScreenMsg{Screen: opts.OpenHistory()} }
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Exit",
		Key:    "q",
		Action: func() tea.Cmd { return tea.Quit },
	})

	return &HomeScreen{opts: opts, menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.opts.Repo == nil {
		return nil
	}
	repo := h.opts.Repo
	return func() tea.Msg {
		stats, err := repo.SectionStats(context.Background())
		return statsLoadedMsg{Stats: stats, Err: err}
	}
}

// Resume reloads the stats line after a practice screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.Init()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		if msg.Err != nil {
			slog.Warn("load practice stats", "err", msg.Err)
			return h, nil
		}
		h.stats = summarize(msg.Stats)
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) mood() Mood {
	switch {
	case h.stats.Attempts == 0:
		return MoodWelcome
	case h.opts.Now().Sub(h.stats.LastPracticed) < 24*time.Hour:
		return MoodOnStreak
	default:
		return MoodNudge
	}
}

// suggestion names the weakest section for the greeting.
func (h *HomeScreen) suggestion() string {
	for _, sec := range session.Sections {
		if sec.String() == h.stats.Weakest {
			return sec.Title()
		}
	}
	return ""
}

func (h *HomeScreen) View(width, height int) string {
	// height excludes the app header and footer.
	compact := layout.Compact(width, height+4)
	cw := components.CardWidth(width)

	blocks := []string{renderBanner(cw, compact)}
	if !compact {
		mood := h.mood()
		blocks = append(blocks, renderBubble(mood.greeting(h.suggestion()), mood, cw))
	}
	if h.opts.Repo != nil {
		blocks = append(blocks, renderStats(h.stats, h.opts.Now(), cw))
	}
	blocks = append(blocks, renderMenu(h.menu, cw, compact))

	return components.Panel(strings.Join(blocks, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "1-4", Description: "Jump to section"},
	}
}
