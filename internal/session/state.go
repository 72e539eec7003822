package session

import (
	"time"

	"github.com/abhisek/parley/internal/catalog"
	"github.com/abhisek/parley/internal/memorymatch"
	"github.com/abhisek/parley/internal/pronunciation"
	"github.com/abhisek/parley/internal/quiz"
	"github.com/abhisek/parley/internal/typing"
)

// Section is the top-level area of the practice menu.
type Section int

const (
	SectionMain Section = iota
	SectionGrammar
	SectionSpeaking
	SectionTyping
	SectionVocabulary
)

// Sections lists the practice areas in menu order.
var Sections = []Section{SectionGrammar, SectionSpeaking, SectionTyping, SectionVocabulary}

func (s Section) String() string {
	switch s {
	case SectionGrammar:
		return "grammar"
	case SectionSpeaking:
		return "speaking"
	case SectionTyping:
		return "typing"
	case SectionVocabulary:
		return "vocabulary"
	default:
		return "main"
	}
}

// Title is the display name of the section.
func (s Section) Title() string {
	switch s {
	case SectionGrammar:
		return "Grammar"
	case SectionSpeaking:
		return "Speaking"
	case SectionTyping:
		return "Typing"
	case SectionVocabulary:
		return "Vocabulary"
	default:
		return "Practice"
	}
}

// SubView is the screen within a section.
type SubView int

const (
	ViewList SubView = iota
	ViewLesson
	ViewExercise
	ViewPractice
	ViewFlashcard
	ViewGame
)

func (v SubView) String() string {
	switch v {
	case ViewLesson:
		return "lesson"
	case ViewExercise:
		return "exercise"
	case ViewPractice:
		return "practice"
	case ViewFlashcard:
		return "flashcard"
	case ViewGame:
		return "game"
	default:
		return "list"
	}
}

// IsActivity reports whether v is one of the activity views.
func (v SubView) IsActivity() bool {
	return v >= ViewExercise
}

// Flashcards is the position in a vocabulary flashcard deck.
type Flashcards struct {
	Index   int
	Flipped bool
}

// PracticeSession holds everything about the catalog entry currently
// open. It is created when an entry is selected and discarded when the
// learner leaves it; activity state inside it is replaced wholesale when
// an activity starts or ends.
type PracticeSession struct {
	// ID is a UUID identifying the session in the history store.
	ID        string
	Section   Section
	StartedAt time.Time

	// The selected catalog entry. Exactly one is set, matching Section.
	Grammar    *catalog.GrammarLesson
	Speaking   *catalog.SpeakingActivity
	Typing     *catalog.TypingLesson
	Vocabulary *catalog.VocabularyCategory

	// Activity state. Nil (or zero) until the activity starts.
	Quiz   *quiz.Quiz
	Run    typing.Run
	Speech *pronunciation.Practice
	Cards  Flashcards
	Game   *memorymatch.Game

	// ActivityStartedAt is when the current activity began.
	ActivityStartedAt time.Time
}

// EntryID returns the id of the selected catalog entry.
func (s *PracticeSession) EntryID() string {
	switch {
	case s.Grammar != nil:
		return s.Grammar.ID
	case s.Speaking != nil:
		return s.Speaking.ID
	case s.Typing != nil:
		return s.Typing.ID
	case s.Vocabulary != nil:
		return s.Vocabulary.ID
	}
	return ""
}

// Title returns the display title of the selected catalog entry.
func (s *PracticeSession) Title() string {
	switch {
	case s.Grammar != nil:
		return s.Grammar.Title
	case s.Speaking != nil:
		return s.Speaking.Title
	case s.Typing != nil:
		return s.Typing.Title
	case s.Vocabulary != nil:
		return s.Vocabulary.Name
	}
	return ""
}

// Entry is one row of a section's catalog list.
type Entry struct {
	ID       string
	Title    string
	Subtitle string
}
