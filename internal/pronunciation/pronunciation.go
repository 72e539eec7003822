// Package pronunciation tracks a speaking-practice pass over a list of
// prompts: which prompt is current, whether the microphone is live, and
// the scored attempt for the current prompt.
//
// Recognizer events are stamped with the generation of the recording
// that produced them. Only events for the live generation are applied,
// and only while that recording is active or awaiting its transcript.
package pronunciation

import (
	"errors"
	"sync/atomic"

	"github.com/abhisek/parley/internal/similarity"
	"github.com/abhisek/parley/internal/speech"
)

// ErrAlreadyRecording is returned by StartRecording while a recording is
// in progress.
var ErrAlreadyRecording = errors.New("already recording")

// ErrNoPrompt is returned by StartRecording when there is nothing to read.
var ErrNoPrompt = errors.New("no prompt to practise")

// Generations are unique across Practice values so events from an
// abandoned practice never match a new one.
var generationSeq atomic.Uint64

// Attempt is the scored result of reading one prompt aloud.
type Attempt struct {
	Target     string
	Transcript string
	Score      int
	Tier       similarity.FeedbackTier
}

// NewAttempt scores transcript against target.
func NewAttempt(target, transcript string) Attempt {
	score := similarity.Score(target, transcript)
	return Attempt{
		Target:     target,
		Transcript: transcript,
		Score:      score,
		Tier:       similarity.Tier(score),
	}
}

// Practice is the state of one speaking activity.
type Practice struct {
	Prompts []string
	Index   int

	// Recording is true while the microphone is live. Transcribing is
	// true after the user finished speaking and the final transcript is
	// still on its way.
	Recording    bool
	Transcribing bool
	Generation   uint64

	// Attempt is nil until a final transcript arrives for the current
	// prompt. A failed recording leaves it nil.
	Attempt   *Attempt
	Interim   string
	Completed map[int]bool
}

// ResultKind describes what HandleEvent did.
type ResultKind int

const (
	ResultIgnored ResultKind = iota
	ResultInterim
	ResultScored
	ResultFailed
)

// Result reports the effect of a recognizer event.
type Result struct {
	Kind    ResultKind
	Attempt *Attempt
	Err     error

	// AllCompleted is set on the event that completes the last
	// outstanding prompt.
	AllCompleted bool
}

// New starts a practice over prompts.
func New(prompts []string) *Practice {
	return &Practice{
		Prompts:   prompts,
		Completed: make(map[int]bool, len(prompts)),
	}
}

// Current returns the prompt being practised.
func (p *Practice) Current() string {
	if p.Index < 0 || p.Index >= len(p.Prompts) {
		return ""
	}
	return p.Prompts[p.Index]
}

// Busy reports whether a recording is live or awaiting its transcript.
func (p *Practice) Busy() bool {
	return p.Recording || p.Transcribing
}

// StartRecording opens a new recording generation and returns it. The
// previous attempt stays visible until the new one is scored.
func (p *Practice) StartRecording() (uint64, error) {
	if p.Busy() {
		return 0, ErrAlreadyRecording
	}
	if p.Current() == "" {
		return 0, ErrNoPrompt
	}
	p.Generation = generationSeq.Add(1)
	p.Recording = true
	p.Interim = ""
	return p.Generation, nil
}

// Finish marks the end of speech. The final transcript for the current
// generation is still accepted.
func (p *Practice) Finish() {
	if !p.Recording {
		return
	}
	p.Recording = false
	p.Transcribing = true
}

// StopRequested abandons the recording. Results that arrive afterwards
// are ignored and the last attempt is kept as it was.
func (p *Practice) StopRequested() {
	p.Recording = false
	p.Transcribing = false
	p.Interim = ""
}

// Abort undoes StartRecording when the recognizer could not start, so no
// partial attempt exists.
func (p *Practice) Abort(gen uint64) {
	if gen == p.Generation {
		p.StopRequested()
	}
}

// HandleEvent applies a recognizer event.
func (p *Practice) HandleEvent(ev speech.Event) Result {
	if !p.Busy() || ev.Generation != p.Generation {
		return Result{}
	}

	switch ev.Kind {
	case speech.EventInterim:
		if !p.Recording {
			return Result{}
		}
		p.Interim = ev.Text
		return Result{Kind: ResultInterim}

	case speech.EventFinal:
		wasDone := p.AllCompleted()
		a := NewAttempt(p.Current(), ev.Text)
		p.Attempt = &a
		p.Recording = false
		p.Transcribing = false
		p.Interim = ""
		p.Completed[p.Index] = true
		return Result{Kind: ResultScored, Attempt: &a, AllCompleted: !wasDone && p.AllCompleted()}

	case speech.EventError:
		p.Recording = false
		p.Transcribing = false
		p.Interim = ""
		p.Attempt = nil
		return Result{Kind: ResultFailed, Err: ev.Err}
	}
	return Result{}
}

// Next moves to the following prompt. Any live recording is abandoned.
func (p *Practice) Next() bool {
	if p.Index >= len(p.Prompts)-1 {
		return false
	}
	p.Index++
	p.clearPrompt()
	return true
}

// Prev moves to the preceding prompt. Any live recording is abandoned.
func (p *Practice) Prev() bool {
	if p.Index <= 0 {
		return false
	}
	p.Index--
	p.clearPrompt()
	return true
}

func (p *Practice) clearPrompt() {
	p.StopRequested()
	p.Attempt = nil
}

// AllCompleted reports whether every prompt has a scored attempt.
func (p *Practice) AllCompleted() bool {
	return len(p.Prompts) > 0 && len(p.Completed) == len(p.Prompts)
}

// Reset returns the practice to its initial state.
func (p *Practice) Reset() {
	*p = *New(p.Prompts)
}
