package session

import (
	"fmt"
	"time"

	"github.com/abhisek/parley/internal/memorymatch"
	"github.com/abhisek/parley/internal/pronunciation"
	"github.com/abhisek/parley/internal/typing"
)

// ActivityResult is reported to the Listener when an activity produces a
// score: a finished quiz, a completed typing run, a scored speaking
// attempt or a cleared memory board.
type ActivityResult struct {
	SessionID string
	Section   Section
	EntryID   string
	Activity  SubView

	Score int
	Total int

	// Typing only.
	WPM       int
	Accuracy  int
	TargetMet bool

	// Detail is a short free-form note, such as the prompt spoken.
	Detail   string
	Duration time.Duration
}

// Percent returns Score as a rounded percentage of Total.
func (r ActivityResult) Percent() int {
	if r.Total <= 0 {
		return 0
	}
	return (200*r.Score + r.Total) / (2 * r.Total)
}

func (s *PracticeSession) result(view SubView, now time.Time) ActivityResult {
	r := ActivityResult{
		SessionID: s.ID,
		Section:   s.Section,
		EntryID:   s.EntryID(),
		Activity:  view,
	}
	if !s.ActivityStartedAt.IsZero() {
		r.Duration = now.Sub(s.ActivityStartedAt)
	}
	return r
}

func (s *PracticeSession) quizResult(now time.Time) ActivityResult {
	r := s.result(ViewExercise, now)
	res := s.Quiz.Result()
	r.Score, r.Total = res.Score, res.Total
	r.Detail = fmt.Sprintf("%d/%d correct", res.Score, res.Total)
	return r
}

func (s *PracticeSession) typingResult(now time.Time) ActivityResult {
	r := s.result(ViewPractice, now)
	st := s.Run.Stats
	r.Score, r.Total = st.Accuracy, 100
	r.WPM, r.Accuracy = st.WPM, st.Accuracy
	r.TargetMet = typing.TargetMet(st, s.Typing.TargetWPM, s.Typing.TargetAccuracy)
	r.Duration = s.Run.End.Sub(s.Run.Start)
	r.Detail = fmt.Sprintf("%d wpm, %d%% accuracy", st.WPM, st.Accuracy)
	return r
}

func (s *PracticeSession) speakingResult(a *pronunciation.Attempt, now time.Time) ActivityResult {
	r := s.result(ViewPractice, now)
	r.Score, r.Total = a.Score, 100
	r.Detail = a.Target
	return r
}

func (s *PracticeSession) gameResult(now time.Time) ActivityResult {
	r := s.result(ViewGame, now)
	r.Score = s.Game.Score
	r.Total = len(s.Game.Words) * memorymatch.PointsPerMatch
	r.Detail = fmt.Sprintf("%d pairs", len(s.Game.Words))
	return r
}
