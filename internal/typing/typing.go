// Package typing measures typing speed and accuracy for a practice run.
//
// A Run is a value: every keystroke produces a new Run, so the host can
// replace its copy atomically and a Reset never races a pending keystroke.
// The clock starts on the first keystroke; focus alone does not start it.
package typing

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

// Stats holds the live or final metrics for a run.
type Stats struct {
	WPM      int
	Accuracy int
	// Defined is false until at least one character has been typed.
	Defined bool
}

// Run is a single attempt at typing a target text.
type Run struct {
	Target string
	Typed  string
	Start  time.Time // zero until the first keystroke
	End    time.Time // zero until the run completes
	Stats  Stats
}

// CharState classifies a target position for rendering.
type CharState int

const (
	CharPending CharState = iota
	CharMatch
	CharMismatch
	CharCursor
)

// NewRun creates an empty run for target.
func NewRun(target string) Run {
	return Run{Target: target}
}

// Started reports whether the first keystroke has been received.
func (r Run) Started() bool { return !r.Start.IsZero() }

// Completed reports whether the run has been frozen.
func (r Run) Completed() bool { return !r.End.IsZero() }

// Elapsed returns the time between the first keystroke and now, or the
// final duration for a completed run.
func (r Run) Elapsed(now time.Time) time.Duration {
	if !r.Started() {
		return 0
	}
	if r.Completed() {
		return r.End.Sub(r.Start)
	}
	return now.Sub(r.Start)
}

// Keystroke applies the new typed text at time now. A completed run is
// returned unchanged. The run completes exactly when the typed rune count
// equals the target rune count; overtyping is kept but never completes.
func Keystroke(r Run, typed string, now time.Time) Run {
	if r.Completed() {
		return r
	}
	if !r.Started() {
		r.Start = now
	}
	r.Typed = typed
	r.Stats = Compute(r.Target, r.Typed, now.Sub(r.Start))
	if utf8.RuneCountInString(typed) == utf8.RuneCountInString(r.Target) {
		r.End = now
	}
	return r
}

// Reset clears typed text, both timestamps and stats, keeping the target.
func Reset(r Run) Run {
	return NewRun(r.Target)
}

// Compute derives stats for typed against target after elapsed time.
func Compute(target, typed string, elapsed time.Duration) Stats {
	if typed == "" {
		return Stats{}
	}
	return Stats{
		WPM:      WPM(target, elapsed),
		Accuracy: Accuracy(target, typed),
		Defined:  true,
	}
}

// WPM returns the target word count divided by elapsed minutes, rounded.
// Elapsed times under a millisecond yield 0.
func WPM(target string, elapsed time.Duration) int {
	if elapsed < time.Millisecond {
		return 0
	}
	words := len(strings.Split(target, " "))
	minutes := float64(elapsed.Milliseconds()) / 60000
	return int(math.Round(float64(words) / minutes))
}

// Accuracy returns the percentage of typed runes that match the target rune
// at the same index. Empty input yields 0.
func Accuracy(target, typed string) int {
	tr := []rune(target)
	yr := []rune(typed)
	if len(yr) == 0 {
		return 0
	}
	correct := 0
	for i, c := range yr {
		if i < len(tr) && tr[i] == c {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(yr))))
}

// CharStates classifies every target rune against typed.
func CharStates(target, typed string) []CharState {
	tr := []rune(target)
	yr := []rune(typed)
	states := make([]CharState, len(tr))
	for i := range tr {
		switch {
		case i < len(yr) && yr[i] == tr[i]:
			states[i] = CharMatch
		case i < len(yr):
			states[i] = CharMismatch
		case i == len(yr):
			states[i] = CharCursor
		default:
			states[i] = CharPending
		}
	}
	return states
}

// TargetMet reports whether stats reach both lesson targets.
func TargetMet(s Stats, targetWPM, targetAccuracy int) bool {
	return s.Defined && s.WPM >= targetWPM && s.Accuracy >= targetAccuracy
}
