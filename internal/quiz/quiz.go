// Package quiz scores a linear multiple-choice exercise list.
package quiz

import "github.com/abhisek/parley/internal/catalog"

// Quiz is the state of one pass through a grammar lesson's exercises.
// Invalid calls (submitting without a selection, advancing before the
// answer is revealed) are ignored.
type Quiz struct {
	Exercises []catalog.Exercise
	Index     int
	Selected  *int
	Revealed  bool
	Score     int
	Complete  bool
}

// Result is the final tally of a completed quiz.
type Result struct {
	Score int
	Total int
}

// Percent returns the score as a rounded percentage of the total.
func (r Result) Percent() int {
	if r.Total == 0 {
		return 0
	}
	return (200*r.Score + r.Total) / (2 * r.Total)
}

// New starts a quiz. The exercise order is kept as given.
func New(exercises []catalog.Exercise) *Quiz {
	return &Quiz{
		Exercises: exercises,
		Complete:  len(exercises) == 0,
	}
}

// Current returns the exercise being answered.
func (q *Quiz) Current() (catalog.Exercise, bool) {
	if q.Complete || q.Index >= len(q.Exercises) {
		return catalog.Exercise{}, false
	}
	return q.Exercises[q.Index], true
}

// Select marks option i as the chosen answer.
func (q *Quiz) Select(i int) bool {
	ex, ok := q.Current()
	if !ok || q.Revealed || i < 0 || i >= len(ex.Options) {
		return false
	}
	q.Selected = &i
	return true
}

// Submit reveals the answer and scores the selection.
func (q *Quiz) Submit() bool {
	ex, ok := q.Current()
	if !ok || q.Selected == nil || q.Revealed {
		return false
	}
	q.Revealed = true
	if *q.Selected == ex.Answer {
		q.Score++
	}
	return true
}

// Correct reports whether the revealed answer was right.
func (q *Quiz) Correct() bool {
	ex, ok := q.Current()
	return ok && q.Revealed && q.Selected != nil && *q.Selected == ex.Answer
}

// Advance moves to the next question, or completes the quiz after the
// last one.
func (q *Quiz) Advance() bool {
	if !q.Revealed || q.Complete {
		return false
	}
	if q.Index >= len(q.Exercises)-1 {
		q.Complete = true
		return true
	}
	q.Index++
	q.Selected = nil
	q.Revealed = false
	return true
}

// Retry starts over with the same exercises in the same order.
func (q *Quiz) Retry() {
	*q = *New(q.Exercises)
}

// Result returns the running or final score.
func (q *Quiz) Result() Result {
	return Result{Score: q.Score, Total: len(q.Exercises)}
}
