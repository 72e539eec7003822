// Package session drives navigation through the practice menu and owns
// the state of the activity in progress.
//
// Navigation is a (Section, SubView) state machine:
//
//	main -> list -> lesson -> exercise | practice | flashcard | game
//
// Back walks one level up. Leaving an activity replaces its state with a
// fresh value and leaving a lesson discards the PracticeSession, so no
// score, typed text, transcript or card position survives into the next
// visit. Invalid transitions are ignored and reported as false.
package session

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/memorymatch"
	"github.com/abhisek/parley/internal/notify"
	"github.com/abhisek/parley/internal/pronunciation"
	"github.com/abhisek/parley/internal/quiz"
	"github.com/abhisek/parley/internal/speech"
	"github.com/abhisek/parley/internal/typing"
)

// Listener observes session lifecycle events. Calls are made
// synchronously from the controller; implementations must not block.
type Listener interface {
	SessionStarted(s *PracticeSession)
	SessionEnded(s *PracticeSession)
	ActivityFinished(r ActivityResult)
}

// Options configures a Controller. Zero values get defaults.
type Options struct {
	Shuffler memorymatch.Shuffler
	GameSize int
	Clock    func() time.Time
	Sink     notify.Sink
	Listener Listener
}

// Controller is the practice state machine.
type Controller struct {
	provider catalog.Provider
	opts     Options

	section Section
	view    SubView
	session *PracticeSession
}

// NewController creates a controller positioned at the main menu.
func NewController(provider catalog.Provider, opts Options) *Controller {
	if opts.Shuffler == nil {
		opts.Shuffler = &memorymatch.RandShuffler{}
	}
	if opts.GameSize <= 0 {
		opts.GameSize = memorymatch.DefaultSize
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Sink == nil {
		opts.Sink = notify.Discard
	}
	return &Controller{provider: provider, opts: opts}
}

// State returns the current section and view.
func (c *Controller) State() (Section, SubView) { return c.section, c.view }

// Session returns the open session, or nil outside a lesson.
func (c *Controller) Session() *PracticeSession { return c.session }

// EnterSection opens a section's catalog list. Valid only from the main
// menu.
func (c *Controller) EnterSection(sec Section) bool {
	if c.section != SectionMain || sec == SectionMain {
		return false
	}
	c.section = sec
	c.view = ViewList
	return true
}

// Entries lists the catalog entries of the current section.
func (c *Controller) Entries() []Entry {
	var out []Entry
	switch c.section {
	case SectionGrammar:
		for _, g := range c.provider.Grammar() {
			out = append(out, Entry{ID: g.ID, Title: g.Title, Subtitle: g.Description})
		}
	case SectionSpeaking:
		for _, s := range c.provider.Speaking() {
			out = append(out, Entry{ID: s.ID, Title: s.Title, Subtitle: s.Description})
		}
	case SectionTyping:
		for _, t := range c.provider.Typing() {
			out = append(out, Entry{ID: t.ID, Title: t.Title, Subtitle: t.Level})
		}
	case SectionVocabulary:
		for _, v := range c.provider.Vocabulary() {
			out = append(out, Entry{ID: v.ID, Title: v.Name, Subtitle: v.Description})
		}
	}
	return out
}

// Select opens a catalog entry from the list and starts a new session.
func (c *Controller) Select(entryID string) bool {
	if c.section == SectionMain || c.view != ViewList {
		return false
	}

	s := &PracticeSession{
		ID:        uuid.NewString(),
		Section:   c.section,
		StartedAt: c.opts.Clock(),
	}
	switch c.section {
	case SectionGrammar:
		g, ok := c.provider.GrammarLesson(entryID)
		if !ok {
			return false
		}
		s.Grammar = &g
	case SectionSpeaking:
		sp, ok := c.provider.SpeakingActivity(entryID)
		if !ok {
			return false
		}
		s.Speaking = &sp
	case SectionTyping:
		t, ok := c.provider.TypingLesson(entryID)
		if !ok {
			return false
		}
		s.Typing = &t
	case SectionVocabulary:
		v, ok := c.provider.VocabularyCategory(entryID)
		if !ok {
			return false
		}
		s.Vocabulary = &v
	}

	c.session = s
	c.view = ViewLesson
	slog.Debug("session started", "session", s.ID, "section", s.Section, "entry", entryID)
	if c.opts.Listener != nil {
		c.opts.Listener.SessionStarted(s)
	}
	return true
}

// Activities returns the activity views available for the current
// section.
func (c *Controller) Activities() []SubView {
	switch c.section {
	case SectionGrammar:
		return []SubView{ViewExercise}
	case SectionSpeaking, SectionTyping:
		return []SubView{ViewPractice}
	case SectionVocabulary:
		return []SubView{ViewFlashcard, ViewGame}
	}
	return nil
}

// StartActivity moves from the lesson into an activity with fresh state.
func (c *Controller) StartActivity(view SubView) bool {
	if c.view != ViewLesson || c.session == nil || !c.allows(view) {
		return false
	}
	s := c.session
	switch view {
	case ViewExercise:
		s.Quiz = quiz.New(s.Grammar.Exercises)
	case ViewPractice:
		if s.Speaking != nil {
			s.Speech = pronunciation.New(s.Speaking.Prompts)
		} else {
			s.Run = typing.NewRun(s.Typing.Text)
		}
	case ViewFlashcard:
		s.Cards = Flashcards{}
	case ViewGame:
		s.Game = memorymatch.Deal(s.Vocabulary.Words, c.opts.GameSize, c.opts.Shuffler)
	}
	s.ActivityStartedAt = c.opts.Clock()
	c.view = view
	return true
}

func (c *Controller) allows(view SubView) bool {
	for _, v := range c.Activities() {
		if v == view {
			return true
		}
	}
	return false
}

// Back moves one level up. It returns false at the main menu, where the
// host should leave the practice screen.
func (c *Controller) Back() bool {
	switch {
	case c.view.IsActivity():
		c.resetActivity()
		c.view = ViewLesson
	case c.view == ViewLesson:
		c.endSession()
		c.view = ViewList
	case c.section != SectionMain:
		c.section = SectionMain
		c.view = ViewList
	default:
		return false
	}
	return true
}

// Close ends any open session, as when the application exits.
func (c *Controller) Close() {
	if c.view.IsActivity() {
		c.resetActivity()
	}
	c.endSession()
	c.section = SectionMain
	c.view = ViewList
}

func (c *Controller) resetActivity() {
	s := c.session
	if s == nil {
		return
	}
	if s.Game != nil {
		s.Game.Cancel()
	}
	if s.Speech != nil {
		s.Speech.StopRequested()
	}
	s.Quiz = nil
	s.Run = typing.Run{}
	s.Speech = nil
	s.Cards = Flashcards{}
	s.Game = nil
	s.ActivityStartedAt = time.Time{}
}

func (c *Controller) endSession() {
	s := c.session
	if s == nil {
		return
	}
	c.session = nil
	slog.Debug("session ended", "session", s.ID)
	if c.opts.Listener != nil {
		c.opts.Listener.SessionEnded(s)
	}
}

func (c *Controller) finished(r ActivityResult) {
	if c.opts.Listener != nil {
		c.opts.Listener.ActivityFinished(r)
	}
}

func (c *Controller) in(view SubView) bool {
	return c.view == view && c.session != nil
}

// --- grammar quiz ---

// SelectAnswer chooses an option for the current question.
func (c *Controller) SelectAnswer(i int) bool {
	if !c.in(ViewExercise) {
		return false
	}
	return c.session.Quiz.Select(i)
}

// SubmitAnswer reveals the current question.
func (c *Controller) SubmitAnswer() bool {
	if !c.in(ViewExercise) {
		return false
	}
	return c.session.Quiz.Submit()
}

// AdvanceQuiz moves to the next question; completing the quiz reports
// the result.
func (c *Controller) AdvanceQuiz() bool {
	if !c.in(ViewExercise) {
		return false
	}
	q := c.session.Quiz
	if !q.Advance() {
		return false
	}
	if q.Complete {
		notify.Post(c.opts.Sink, notify.Success, notify.MsgQuizCompleted)
		c.finished(c.session.quizResult(c.opts.Clock()))
	}
	return true
}

// RetryQuiz starts the quiz over.
func (c *Controller) RetryQuiz() bool {
	if !c.in(ViewExercise) {
		return false
	}
	c.session.Quiz.Retry()
	c.session.ActivityStartedAt = c.opts.Clock()
	return true
}

// --- typing ---

// Keystroke records the full typed text after a key press.
func (c *Controller) Keystroke(typed string) bool {
	if !c.in(ViewPractice) || c.session.Typing == nil {
		return false
	}
	s := c.session
	before := s.Run.Completed()
	s.Run = typing.Keystroke(s.Run, typed, c.opts.Clock())
	if !before && s.Run.Completed() {
		r := s.typingResult(c.opts.Clock())
		if r.TargetMet {
			notify.Post(c.opts.Sink, notify.Success, notify.MsgTypingTargetMet)
		} else {
			notify.Post(c.opts.Sink, notify.Info, notify.MsgTypingCompleted)
		}
		c.finished(r)
	}
	return true
}

// ResetTyping clears the run so the lesson can be typed again.
func (c *Controller) ResetTyping() bool {
	if !c.in(ViewPractice) || c.session.Typing == nil {
		return false
	}
	c.session.Run = typing.Reset(c.session.Run)
	return true
}

// --- speaking ---

// StartRecording opens a recording for the current prompt. The host then
// starts the recognizer with the returned generation.
func (c *Controller) StartRecording() (uint64, error) {
	if !c.in(ViewPractice) || c.session.Speech == nil {
		return 0, pronunciation.ErrNoPrompt
	}
	return c.session.Speech.StartRecording()
}

// RecordingFailed reports that the recognizer could not start. The
// practice returns to its pre-attempt state.
func (c *Controller) RecordingFailed(gen uint64, err error) {
	if !c.in(ViewPractice) || c.session.Speech == nil {
		return
	}
	c.session.Speech.Abort(gen)
	c.notifySpeechError(err)
}

// FinishRecording marks the end of speech; the transcript is still
// accepted.
func (c *Controller) FinishRecording() {
	if c.in(ViewPractice) && c.session.Speech != nil {
		c.session.Speech.Finish()
	}
}

// StopRecording abandons the recording; late results are ignored.
func (c *Controller) StopRecording() {
	if c.in(ViewPractice) && c.session.Speech != nil {
		c.session.Speech.StopRequested()
	}
}

// HandleSpeech applies a recognizer event to the live practice.
func (c *Controller) HandleSpeech(ev speech.Event) pronunciation.Result {
	if !c.in(ViewPractice) || c.session.Speech == nil {
		return pronunciation.Result{}
	}
	res := c.session.Speech.HandleEvent(ev)
	switch res.Kind {
	case pronunciation.ResultScored:
		c.finished(c.session.speakingResult(res.Attempt, c.opts.Clock()))
		if res.AllCompleted {
			notify.Post(c.opts.Sink, notify.Success, notify.MsgAllPromptsCompleted)
		}
	case pronunciation.ResultFailed:
		c.notifySpeechError(res.Err)
	}
	return res
}

// NextPrompt and PrevPrompt move between speaking prompts.
func (c *Controller) NextPrompt() bool {
	return c.in(ViewPractice) && c.session.Speech != nil && c.session.Speech.Next()
}

func (c *Controller) PrevPrompt() bool {
	return c.in(ViewPractice) && c.session.Speech != nil && c.session.Speech.Prev()
}

// SpeakFailed reports a synthesis failure to the learner.
func (c *Controller) SpeakFailed(err error) {
	if errors.Is(err, speech.ErrUnsupported) {
		notify.Post(c.opts.Sink, notify.Warning, notify.MsgSynthesisUnsupported)
		return
	}
	slog.Warn("speech synthesis failed", "err", err)
	notify.Post(c.opts.Sink, notify.Error, err.Error())
}

func (c *Controller) notifySpeechError(err error) {
	switch {
	case errors.Is(err, speech.ErrUnsupported):
		notify.Post(c.opts.Sink, notify.Warning, notify.MsgRecognitionUnsupported)
	case errors.Is(err, speech.ErrPermission):
		notify.Post(c.opts.Sink, notify.Error, notify.MsgMicrophoneDenied)
	case errors.Is(err, speech.ErrBusy):
		notify.Post(c.opts.Sink, notify.Warning, notify.MsgRecognizerBusy)
	case errors.Is(err, pronunciation.ErrNoPrompt):
		slog.Debug("recording requested without a prompt")
	default:
		slog.Warn("speech recognition failed", "err", err)
		notify.Post(c.opts.Sink, notify.Error, notify.MsgTranscriptionFailed)
	}
}

// --- flashcards ---

// Flip turns the current flashcard over.
func (c *Controller) Flip() bool {
	if !c.in(ViewFlashcard) {
		return false
	}
	c.session.Cards.Flipped = !c.session.Cards.Flipped
	return true
}

// NextCard moves to the next flashcard, showing its front.
func (c *Controller) NextCard() bool {
	if !c.in(ViewFlashcard) || c.session.Cards.Index >= len(c.session.Vocabulary.Words)-1 {
		return false
	}
	c.session.Cards = Flashcards{Index: c.session.Cards.Index + 1}
	return true
}

// PrevCard moves to the previous flashcard, showing its front.
func (c *Controller) PrevCard() bool {
	if !c.in(ViewFlashcard) || c.session.Cards.Index <= 0 {
		return false
	}
	c.session.Cards = Flashcards{Index: c.session.Cards.Index - 1}
	return true
}

// CurrentCard returns the word on the current flashcard.
func (c *Controller) CurrentCard() (catalog.Word, bool) {
	if !c.in(ViewFlashcard) {
		return catalog.Word{}, false
	}
	words := c.session.Vocabulary.Words
	i := c.session.Cards.Index
	if i < 0 || i >= len(words) {
		return catalog.Word{}, false
	}
	return words[i], true
}

// --- memory game ---

// ClickCard selects a card on the board. Match and Mismatch outcomes
// carry a token the host hands to ResolveCard after the outcome's delay.
func (c *Controller) ClickCard(card memorymatch.Card) memorymatch.Outcome {
	if !c.in(ViewGame) {
		return memorymatch.Outcome{}
	}
	return c.session.Game.Click(card)
}

// ResolveCard clears a resolved pair. Tokens from a game that has since
// been left or restarted are ignored.
func (c *Controller) ResolveCard(token uint64) bool {
	if !c.in(ViewGame) {
		return false
	}
	g := c.session.Game
	if !g.Resolve(token) {
		return false
	}
	if g.Complete() {
		notify.Post(c.opts.Sink, notify.Success, notify.MsgGameCompleted)
		c.finished(c.session.gameResult(c.opts.Clock()))
	}
	return true
}

// RestartGame deals a new board.
func (c *Controller) RestartGame() bool {
	if !c.in(ViewGame) {
		return false
	}
	c.session.Game.Restart(c.session.Vocabulary.Words, c.opts.Shuffler)
	c.session.ActivityStartedAt = c.opts.Clock()
	return true
}
