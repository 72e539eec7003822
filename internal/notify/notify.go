// Package notify carries short user-facing messages from the engine to
// whatever surface displays them.
package notify

import (
	"sync"
	"time"
)

// Kind is the severity of a notice.
type Kind int

const (
	Info Kind = iota
	Success
	Warning
	Error
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Messages shown to the learner.
const (
	MsgRecognitionUnsupported = "Speech recognition is not supported in this environment"
	MsgSynthesisUnsupported   = "Speech synthesis is not supported"
	MsgMicrophoneDenied       = "Microphone access was denied"
	MsgRecognizerBusy         = "The recognizer is still busy. Try again in a moment"
	MsgTranscriptionFailed    = "Could not transcribe your recording. Please try again"
	MsgAllPromptsCompleted    = "Great job! All prompts completed"
	MsgQuizCompleted          = "Quiz complete!"
	MsgTypingTargetMet        = "Target reached! Well done"
	MsgTypingCompleted        = "Lesson typed. Keep practising to reach the target"
	MsgGameCompleted          = "All pairs matched!"
)

// Notice is one message.
type Notice struct {
	Kind Kind
	Text string
	At   time.Time
}

// Sink receives notices. Notify must not block.
type Sink interface {
	Notify(Notice)
}

// Discard drops every notice.
var Discard Sink = discard{}

type discard struct{}

func (discard) Notify(Notice) {}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Notice)

func (f SinkFunc) Notify(n Notice) { f(n) }

// DefaultQueueSize bounds a Queue created with a non-positive size.
const DefaultQueueSize = 16

// Queue is a bounded FIFO of notices. When full, the oldest notice is
// dropped.
type Queue struct {
	mu    sync.Mutex
	items []Notice
	size  int
	now   func() time.Time
}

// NewQueue returns a Queue holding at most size notices.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{size: size, now: time.Now}
}

func (q *Queue) Notify(n Notice) {
	if n.At.IsZero() {
		n.At = q.now()
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == q.size {
		q.items = q.items[1:]
	}
	q.items = append(q.items, n)
}

// Drain removes and returns all queued notices, oldest first.
func (q *Queue) Drain() []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued notices.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Post sends a notice of kind k to s.
func Post(s Sink, k Kind, text string) {
	s.Notify(Notice{Kind: k, Text: text})
}
