// Package practice is the screen that hosts a session.Controller: the
// catalog list of one section, the lesson overview and every activity.
package practice

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/memorymatch"
	"github.com/abhisek/parley/internal/notify"
	"github.com/abhisek/parley/internal/pronunciation"
	"github.com/abhisek/parley/internal/router"
	"github.com/abhisek/parley/internal/screen"
	"github.com/abhisek/parley/internal/session"
	"github.com/abhisek/parley/internal/speech"
	"github.com/abhisek/parley/internal/ui/components"
	"github.com/abhisek/parley/internal/ui/layout"
)

// Deps are the collaborators shared by every practice screen.
type Deps struct {
	Provider    catalog.Provider
	Recognizer  speech.Recognizer
	Synthesizer speech.Synthesizer
	Listener    session.Listener
	Shuffler    memorymatch.Shuffler
	Clock       func() time.Time
}

// PracticeScreen implements screen.Screen for one practice section.
type PracticeScreen struct {
	deps    Deps
	ctrl    *session.Controller
	notices *notify.Queue

	toast    *notify.Notice
	toastSeq int

	// cursor is the highlighted row of the current view. It resets
	// whenever the view or quiz question changes.
	cursor   int
	lastView session.SubView
	lastQ    int

	// Memory game column under the cursor.
	gameCol memorymatch.CardKind

	dictation components.DictationInput

	// cancel stops the recognizer context of the live recording.
	cancel context.CancelFunc
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.EscapeHandler = (*PracticeScreen)(nil)
var _ screen.Closer = (*PracticeScreen)(nil)

// New creates a practice screen opened on the list of sec.
func New(sec session.Section, deps Deps) *PracticeScreen {
	if deps.Recognizer == nil {
		deps.Recognizer = speech.Unsupported{}
	}
	if deps.Synthesizer == nil {
		deps.Synthesizer = speech.Unsupported{}
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	q := notify.NewQueue(8)
	ctrl := session.NewController(deps.Provider, session.Options{
		Shuffler: deps.Shuffler,
		Clock:    deps.Clock,
		Sink:     q,
		Listener: deps.Listener,
	})
	ctrl.EnterSection(sec)
	return &PracticeScreen{
		deps:      deps,
		ctrl:      ctrl,
		notices:   q,
		dictation: components.NewDictationInput("Type what you said, then Enter", 200),
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	return nil
}

func (s *PracticeScreen) Title() string {
	sec, view := s.ctrl.State()
	if sess := s.ctrl.Session(); sess != nil && view != session.ViewList {
		return sec.Title() + ": " + sess.Title()
	}
	return sec.Title()
}

// HandlesEscape keeps Esc inside the screen; the controller decides
// when the section is left.
func (s *PracticeScreen) HandlesEscape() bool { return true }

// Close abandons any recording and ends the open session. The router
// calls it when the screen is popped or the program quits.
func (s *PracticeScreen) Close() {
	if sess := s.ctrl.Session(); sess != nil && sess.Speech != nil && sess.Speech.Busy() {
		s.cancelRecording()
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.ctrl.Close()
}

// Controller exposes the underlying state machine.
func (s *PracticeScreen) Controller() *session.Controller { return s.ctrl }

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		cmd = s.handleKey(msg)

	case speechEventMsg:
		s.ctrl.HandleSpeech(msg.Event)
		cmd = waitForSpeech(msg.ch, msg.Event.Generation)

	case speechClosedMsg:
		if sess := s.ctrl.Session(); sess != nil && sess.Speech != nil &&
			sess.Speech.Busy() && sess.Speech.Generation == msg.Generation {
			s.ctrl.StopRecording()
		}

	case speakDoneMsg:
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			s.ctrl.SpeakFailed(msg.Err)
		}

	case resolveCardMsg:
		s.ctrl.ResolveCard(msg.Token)

	case typingTickMsg:
		cmd = s.typingTick()

	case toastExpiredMsg:
		if msg.Seq == s.toastSeq {
			s.toast = nil
		}
		return s, nil
	}

	s.syncCursor()
	return s, tea.Batch(cmd, s.pullNotices())
}

// pullNotices shows the newest notification as a toast.
func (s *PracticeScreen) pullNotices() tea.Cmd {
	notices := s.notices.Drain()
	if len(notices) == 0 {
		return nil
	}
	n := notices[len(notices)-1]
	s.toast = &n
	s.toastSeq++
	seq := s.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{Seq: seq}
	})
}

func (s *PracticeScreen) syncCursor() {
	_, view := s.ctrl.State()
	q := -1
	if sess := s.ctrl.Session(); sess != nil && sess.Quiz != nil {
		q = sess.Quiz.Index
	}
	if view != s.lastView || q != s.lastQ {
		s.cursor = 0
		s.gameCol = memorymatch.KindWord
		s.lastView, s.lastQ = view, q
	}
}

func (s *PracticeScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()
	_, view := s.ctrl.State()

	if key == "esc" {
		return s.back()
	}

	switch view {
	case session.ViewList:
		return s.handleListKey(key)
	case session.ViewLesson:
		return s.handleLessonKey(key)
	case session.ViewExercise:
		return s.handleQuizKey(key)
	case session.ViewPractice:
		if s.ctrl.Session().Typing != nil {
			return s.handleTypingKey(msg)
		}
		return s.handleSpeakingKey(msg)
	case session.ViewFlashcard:
		return s.handleFlashcardKey(key)
	case session.ViewGame:
		return s.handleGameKey(key)
	}
	return nil
}

// back leaves the current level. A live recording is abandoned first.
func (s *PracticeScreen) back() tea.Cmd {
	if sess := s.ctrl.Session(); sess != nil && sess.Speech != nil && sess.Speech.Busy() {
		s.cancelRecording()
		return nil
	}
	s.ctrl.Back()
	if sec, _ := s.ctrl.State(); sec == session.SectionMain {
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return nil
}

func moveCursor(cursor, delta, n int) int {
	if n == 0 {
		return 0
	}
	return min(max(cursor+delta, 0), n-1)
}

// --- list and lesson ---

func (s *PracticeScreen) handleListKey(key string) tea.Cmd {
	entries := s.ctrl.Entries()
	switch key {
	case "up", "k":
		s.cursor = moveCursor(s.cursor, -1, len(entries))
	case "down", "j":
		s.cursor = moveCursor(s.cursor, 1, len(entries))
	case "enter":
		if s.cursor < len(entries) {
			s.ctrl.Select(entries[s.cursor].ID)
		}
	}
	return nil
}

func (s *PracticeScreen) handleLessonKey(key string) tea.Cmd {
	acts := s.ctrl.Activities()
	switch key {
	case "up", "k", "left", "h":
		s.cursor = moveCursor(s.cursor, -1, len(acts))
	case "down", "j", "right", "l":
		s.cursor = moveCursor(s.cursor, 1, len(acts))
	case "enter":
		if s.cursor < len(acts) {
			s.ctrl.StartActivity(acts[s.cursor])
		}
	}
	return nil
}

// --- grammar quiz ---

func (s *PracticeScreen) handleQuizKey(key string) tea.Cmd {
	q := s.ctrl.Session().Quiz
	if q.Complete {
		if key == "r" {
			s.ctrl.RetryQuiz()
		}
		return nil
	}
	ex, _ := q.Current()

	switch key {
	case "up", "k":
		s.cursor = moveCursor(s.cursor, -1, len(ex.Options))
	case "down", "j":
		s.cursor = moveCursor(s.cursor, 1, len(ex.Options))
	case "enter", "space":
		if q.Revealed {
			s.ctrl.AdvanceQuiz()
			return nil
		}
		s.ctrl.SelectAnswer(s.cursor)
		s.ctrl.SubmitAnswer()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' && !q.Revealed {
			i := int(key[0] - '1')
			if i < len(ex.Options) {
				s.cursor = i
				s.ctrl.SelectAnswer(i)
			}
		}
	}
	return nil
}

// --- typing ---

func (s *PracticeScreen) handleTypingKey(msg tea.KeyPressMsg) tea.Cmd {
	run := s.ctrl.Session().Run
	typed := run.Typed

	switch msg.String() {
	case "ctrl+r", "tab":
		s.ctrl.ResetTyping()
		return nil
	case "backspace":
		if typed == "" {
			return nil
		}
		_, size := utf8.DecodeLastRuneInString(typed)
		typed = typed[:len(typed)-size]
	default:
		if msg.Text == "" {
			return nil
		}
		typed += msg.Text
	}

	wasStarted := run.Started()
	s.ctrl.Keystroke(typed)
	if !wasStarted && s.ctrl.Session().Run.Started() {
		return tickTyping()
	}
	return nil
}

func tickTyping() tea.Cmd {
	return tea.Tick(typingTick, func(t time.Time) tea.Msg { return typingTickMsg(t) })
}

func (s *PracticeScreen) typingTick() tea.Cmd {
	sess := s.ctrl.Session()
	if sess == nil || sess.Typing == nil {
		return nil
	}
	if _, view := s.ctrl.State(); view != session.ViewPractice {
		return nil
	}
	if !sess.Run.Started() || sess.Run.Completed() {
		return nil
	}
	return tickTyping()
}

// --- speaking ---

// liveDictation returns the dictation recognizer while it waits for typed
// input.
func (s *PracticeScreen) liveDictation() (*speech.DictationRecognizer, bool) {
	d, ok := s.deps.Recognizer.(*speech.DictationRecognizer)
	if !ok || !d.Active() {
		return nil, false
	}
	return d, true
}

func (s *PracticeScreen) handleSpeakingKey(msg tea.KeyPressMsg) tea.Cmd {
	p := s.ctrl.Session().Speech
	key := msg.String()

	if p.Recording {
		if d, ok := s.liveDictation(); ok {
			if key == "enter" {
				text := s.dictation.Submit()
				s.ctrl.FinishRecording()
				d.Submit(text)
				return nil
			}
			var cmd tea.Cmd
			s.dictation, cmd = s.dictation.Update(msg)
			d.Interim(s.dictation.Text())
			return cmd
		}
		switch key {
		case "enter", "space", "s":
			s.ctrl.FinishRecording()
			s.stopRecognizer()
		}
		return nil
	}
	if p.Transcribing {
		return nil
	}

	switch key {
	case "r", "space", "enter":
		return s.startRecording()
	case "p":
		return s.speak(p.Current())
	case "right", "n":
		s.ctrl.NextPrompt()
	case "left", "b":
		s.ctrl.PrevPrompt()
	}
	return nil
}

func (s *PracticeScreen) startRecording() tea.Cmd {
	gen, err := s.ctrl.StartRecording()
	if err != nil {
		if !errors.Is(err, pronunciation.ErrAlreadyRecording) {
			s.ctrl.RecordingFailed(gen, err)
		}
		return nil
	}

	rec := s.deps.Recognizer
	if c, ok := rec.(speech.Cuer); ok {
		c.Cue(s.ctrl.Session().Speech.Current())
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := rec.Start(ctx, gen)
	if err != nil {
		cancel()
		s.ctrl.RecordingFailed(gen, err)
		return nil
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel

	cmd := waitForSpeech(ch, gen)
	if _, ok := s.liveDictation(); ok {
		return tea.Batch(cmd, s.dictation.Begin())
	}
	return cmd
}

// cancelRecording abandons the live recording; a late transcript is
// ignored.
func (s *PracticeScreen) cancelRecording() {
	s.ctrl.StopRecording()
	s.stopRecognizer()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *PracticeScreen) stopRecognizer() {
	if err := s.deps.Recognizer.Stop(); err != nil {
		slog.Warn("stop recognizer", "recognizer", s.deps.Recognizer.Name(), "err", err)
	}
}

// waitForSpeech reads the next event from ch.
func waitForSpeech(ch <-chan speech.Event, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return speechClosedMsg{Generation: gen}
		}
		return speechEventMsg{Event: ev, ch: ch}
	}
}

func (s *PracticeScreen) speak(text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	synth := s.deps.Synthesizer
	return func() tea.Msg {
		return speakDoneMsg{Err: synth.Speak(context.Background(), text)}
	}
}

// --- flashcards ---

func (s *PracticeScreen) handleFlashcardKey(key string) tea.Cmd {
	switch key {
	case "space", "enter", "f":
		s.ctrl.Flip()
	case "right", "n", "l":
		s.ctrl.NextCard()
	case "left", "b", "h":
		s.ctrl.PrevCard()
	case "p":
		if w, ok := s.ctrl.CurrentCard(); ok {
			return s.speak(w.Word)
		}
	}
	return nil
}

// --- memory game ---

func (s *PracticeScreen) handleGameKey(key string) tea.Cmd {
	g := s.ctrl.Session().Game
	switch key {
	case "up", "k":
		s.cursor = moveCursor(s.cursor, -1, len(g.Words))
	case "down", "j":
		s.cursor = moveCursor(s.cursor, 1, len(g.Words))
	case "left", "h":
		s.gameCol = memorymatch.KindWord
	case "right", "l":
		s.gameCol = memorymatch.KindMeaning
	case "r":
		s.ctrl.RestartGame()
	case "enter", "space":
		card, ok := s.cardAtCursor()
		if !ok {
			return nil
		}
		o := s.ctrl.ClickCard(card)
		if o.Token == 0 {
			return nil
		}
		return tea.Tick(o.Delay, func(time.Time) tea.Msg {
			return resolveCardMsg{Token: o.Token}
		})
	}
	return nil
}

func (s *PracticeScreen) cardAtCursor() (memorymatch.Card, bool) {
	g := s.ctrl.Session().Game
	column := g.Words
	if s.gameCol == memorymatch.KindMeaning {
		column = g.Meanings
	}
	if s.cursor < 0 || s.cursor >= len(column) {
		return memorymatch.Card{}, false
	}
	return memorymatch.Card{WordID: column[s.cursor].ID, Kind: s.gameCol}, true
}

// --- key hints ---

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	_, view := s.ctrl.State()
	sess := s.ctrl.Session()
	back := layout.KeyHint{Key: "Esc", Description: "Back"}

	switch view {
	case session.ViewList, session.ViewLesson:
		return []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Open"}, back}
	case session.ViewExercise:
		if sess.Quiz.Complete {
			return []layout.KeyHint{{Key: "R", Description: "Retry"}, back}
		}
		if sess.Quiz.Revealed {
			return []layout.KeyHint{{Key: "Enter", Description: "Next"}, back}
		}
		return []layout.KeyHint{{Key: "1-9", Description: "Choose"}, {Key: "Enter", Description: "Check"}, back}
	case session.ViewPractice:
		if sess.Typing != nil {
			return []layout.KeyHint{{Key: "Type", Description: "the passage"}, {Key: "Tab", Description: "Restart"}, back}
		}
		switch {
		case sess.Speech.Recording:
			if _, ok := s.liveDictation(); ok {
				return []layout.KeyHint{{Key: "Enter", Description: "Submit"}, {Key: "Esc", Description: "Cancel"}}
			}
			return []layout.KeyHint{{Key: "Enter", Description: "Done speaking"}, {Key: "Esc", Description: "Cancel"}}
		case sess.Speech.Transcribing:
			return []layout.KeyHint{{Key: "Esc", Description: "Cancel"}}
		}
		return []layout.KeyHint{{Key: "R", Description: "Record"}, {Key: "P", Description: "Play"}, {Key: "←→", Description: "Prompts"}, back}
	case session.ViewFlashcard:
		return []layout.KeyHint{{Key: "Space", Description: "Flip"}, {Key: "←→", Description: "Cards"}, {Key: "P", Description: "Play"}, back}
	case session.ViewGame:
		return []layout.KeyHint{{Key: "Arrows", Description: "Move"}, {Key: "Enter", Description: "Pick"}, {Key: "R", Description: "Restart"}, back}
	}
	return []layout.KeyHint{back}
}
