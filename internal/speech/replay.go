package speech

import (
	"context"
	"strings"
	"sync"
	"time"
)

// ReplayRecognizer replays canned events. Each Start consumes the next
// script; once scripts run out it echoes the last cue, which is how demo
// mode "hears" the prompt being practised. Stop flushes the remaining
// events of the current script without delay.
type ReplayRecognizer struct {
	Scripts [][]Event
	Delay   time.Duration

	mu     sync.Mutex
	cue    string
	stop   chan struct{}
	starts int
}

// NewReplayRecognizer returns a recognizer that plays scripts in order.
func NewReplayRecognizer(delay time.Duration, scripts ...[]Event) *ReplayRecognizer {
	return &ReplayRecognizer{Scripts: scripts, Delay: delay}
}

func (r *ReplayRecognizer) Name() string { return "replay" }

func (r *ReplayRecognizer) Cue(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cue = text
}

func (r *ReplayRecognizer) Start(ctx context.Context, gen uint64) (<-chan Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		return nil, ErrBusy
	}

	var script []Event
	if r.starts < len(r.Scripts) {
		script = r.Scripts[r.starts]
	} else {
		script = echoScript(r.cue)
	}
	r.starts++

	stop := make(chan struct{})
	r.stop = stop
	events := make(chan Event, len(script))
	go r.play(ctx, gen, script, stop, events)
	return events, nil
}

func (r *ReplayRecognizer) play(ctx context.Context, gen uint64, script []Event, stop <-chan struct{}, events chan<- Event) {
	defer func() {
		r.mu.Lock()
		if r.stop == stop {
			r.stop = nil
		}
		r.mu.Unlock()
		close(events)
	}()

	flushing := false
	for _, ev := range script {
		if !flushing && r.Delay > 0 {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				flushing = true
			case <-time.After(r.Delay):
			}
		}
		ev.Generation = gen
		events <- ev
		if ev.Kind != EventInterim {
			return
		}
	}
}

func (r *ReplayRecognizer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
	return nil
}

func echoScript(cue string) []Event {
	words := strings.Fields(cue)
	if len(words) == 0 {
		return []Event{{Kind: EventFinal}}
	}
	half := strings.Join(words[:(len(words)+1)/2], " ")
	return []Event{
		{Kind: EventInterim, Text: half},
		{Kind: EventFinal, Text: strings.Join(words, " ")},
	}
}
