package speech

import (
	"context"
	"strings"
	"sync"
)

// DictationRecognizer is driven by the host: the user types what they
// said and Submit delivers it as the final transcript. It lets speaking
// practice run where no microphone backend is configured.
type DictationRecognizer struct {
	mu     sync.Mutex
	events chan Event
	gen    uint64
}

func NewDictationRecognizer() *DictationRecognizer {
	return &DictationRecognizer{}
}

func (d *DictationRecognizer) Name() string { return "dictation" }

func (d *DictationRecognizer) Start(_ context.Context, gen uint64) (<-chan Event, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.events != nil {
		return nil, ErrBusy
	}
	d.events = make(chan Event, 8)
	d.gen = gen
	return d.events, nil
}

// Active reports whether a session is waiting for input.
func (d *DictationRecognizer) Active() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.events != nil
}

// Interim forwards partial text. It is dropped if the buffer is full.
func (d *DictationRecognizer) Interim(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.events == nil {
		return
	}
	select {
	case d.events <- Event{Kind: EventInterim, Text: text, Generation: d.gen}:
	default:
	}
}

// Submit delivers text as the final transcript and ends the session.
// It reports false if no session is active.
func (d *DictationRecognizer) Submit(text string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.events == nil {
		return false
	}
	// Final events must not be dropped; make room if interims filled the buffer.
	for len(d.events) == cap(d.events) {
		select {
		case <-d.events:
		default:
		}
	}
	d.events <- finalEvent(d.gen, strings.TrimSpace(text))
	close(d.events)
	d.events = nil
	return true
}

// Stop ends the session without a transcript.
func (d *DictationRecognizer) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.events != nil {
		close(d.events)
		d.events = nil
	}
	return nil
}
