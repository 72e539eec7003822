package practice

import (
	"time"

	"github.com/abhisek/parley/internal/speech"
)

// speechEventMsg carries one recognizer event; ch is read again afterwards.
type speechEventMsg struct {
	Event speech.Event
	ch    <-chan speech.Event
}

// speechClosedMsg is sent when a recognizer channel closes.
type speechClosedMsg struct {
	Generation uint64
}

// speakDoneMsg reports the outcome of a synthesis request.
type speakDoneMsg struct {
	Err error
}

// resolveCardMsg is the delayed memory-game resolution for Token.
type resolveCardMsg struct {
	Token uint64
}

// typingTickMsg refreshes the live typing clock.
type typingTickMsg time.Time

// toastExpiredMsg hides toast number Seq if it is still showing.
type toastExpiredMsg struct {
	Seq int
}

const (
	toastDuration = 3 * time.Second
	typingTick    = time.Second
)
