package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/memorymatch"
	"github.com/abhisek/parley/internal/router"
	"github.com/abhisek/parley/internal/screen"
	"github.com/abhisek/parley/internal/screens/history"
	"github.com/abhisek/parley/internal/screens/home"
	"github.com/abhisek/parley/internal/screens/practice"
	"github.com/abhisek/parley/internal/session"
	"github.com/abhisek/parley/internal/speech"
	"github.com/abhisek/parley/internal/store"
	"github.com/abhisek/parley/internal/ui/layout"
)

// Options holds the dependencies the screens are built from.
type Options struct {
	Provider    catalog.Provider
	Recognizer  speech.Recognizer
	Synthesizer speech.Synthesizer

	// EventRepo records practice history. Nil disables history and stats.
	EventRepo store.EventRepo

	Shuffler memorymatch.Shuffler
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	if opts.Recognizer == nil {
		opts.Recognizer = speech.Unsupported{}
	}
	if opts.Synthesizer == nil {
		opts.Synthesizer = speech.Unsupported{}
	}

	deps := practice.Deps{
		Provider:    opts.Provider,
		Recognizer:  opts.Recognizer,
		Synthesizer: opts.Synthesizer,
		Shuffler:    opts.Shuffler,
	}
	homeOpts := home.Options{
		OpenSection: func(sec session.Section) screen.Screen {
			return practice.New(sec, deps)
		},
	}
	if opts.EventRepo != nil {
		deps.Listener = store.NewRecorder(opts.EventRepo)
		homeOpts.Repo = opts.EventRepo
		homeOpts.OpenHistory = func() screen.Screen {
			return history.New(opts.EventRepo, homeOpts.OpenSection)
		}
	}

	return AppModel{
		router: router.New(home.New(homeOpts)),
		status: "mic: " + opts.Recognizer.Name(),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) footerHints() []layout.KeyHint {
	quit := layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), quit)
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, quit}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		quit,
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.TooSmall(m.width, m.height) {
		v.SetContent(layout.TooSmallMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.Header(title, m.status, m.width)
	footer := layout.Footer(m.footerHints(), m.width)
	content := m.router.View(m.width, layout.BodyHeight(header, footer, m.height))
	frame := layout.Frame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
