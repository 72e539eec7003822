// Package speech defines the speech-to-text and speech synthesis
// capabilities consumed by speaking practice, plus the adapters that
// provide them: OpenAI (Whisper and TTS), typed dictation, canned replay
// for tests and demos, and an always-unsupported stub.
package speech

import (
	"context"
	"errors"
	"fmt"
)

// EventKind classifies recognizer events.
type EventKind int

const (
	EventInterim EventKind = iota
	EventFinal
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventInterim:
		return "interim"
	case EventFinal:
		return "final"
	case EventError:
		return "error"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is one result from a recording session. Generation echoes the
// value passed to Recognizer.Start.
type Event struct {
	Kind       EventKind
	Text       string
	Err        error
	Generation uint64
}

// Recognizer turns speech into text. Start begins a recording session and
// returns a channel that delivers zero or more interim events followed by
// at most one final or error event, then closes. Stop asks the session to
// finish; results may still arrive after it returns.
type Recognizer interface {
	Start(ctx context.Context, gen uint64) (<-chan Event, error)
	Stop() error
	Name() string
}

// Synthesizer speaks text aloud. Speak returns once playback has been
// handed to the host; it does not wait for the audio to finish.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
}

// Cuer is implemented by recognizers that can be told what the user is
// expected to say. Replay uses it to echo the prompt in demo mode.
type Cuer interface {
	Cue(text string)
}

var (
	// ErrUnsupported means the capability is not available in this
	// environment.
	ErrUnsupported = errors.New("speech capability not supported")

	// ErrPermission means the microphone or audio device was refused.
	ErrPermission = errors.New("microphone access denied")

	// ErrBusy is returned by Start while a session is already running.
	ErrBusy = errors.New("recognizer already recording")
)

// ErrTranscription wraps a failure from a transcription backend.
type ErrTranscription struct {
	StatusCode int
	Err        error
}

func (e *ErrTranscription) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("transcription failed (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transcription failed: %v", e.Err)
}

func (e *ErrTranscription) Unwrap() error { return e.Err }

// Temporary reports whether retrying may succeed.
func (e *ErrTranscription) Temporary() bool {
	return e.StatusCode == 0 || e.StatusCode == 429 || e.StatusCode >= 500
}

func errorEvent(gen uint64, err error) Event {
	return Event{Kind: EventError, Err: err, Generation: gen}
}

func finalEvent(gen uint64, text string) Event {
	return Event{Kind: EventFinal, Text: text, Generation: gen}
}
