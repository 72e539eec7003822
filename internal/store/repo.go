package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	After int64     // sequence > After
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// Session actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData records a practice session opening or closing.
type SessionEventData struct {
	SessionID string
	Section   string
	EntryID   string
	Action    string
}

// PracticeEventData records one scored activity.
type PracticeEventData struct {
	SessionID string
	Section   string
	EntryID   string
	Activity  string
	Score     int
	Total     int
	WPM       int
	Accuracy  int
	TargetMet bool
	Detail    string
	Duration  time.Duration
}

// Percent returns Score as a rounded percentage of Total.
func (d PracticeEventData) Percent() int {
	if d.Total <= 0 {
		return 0
	}
	return (200*d.Score + d.Total) / (2 * d.Total)
}

// PracticeEvent is a stored practice event.
type PracticeEvent struct {
	Sequence  int64
	Timestamp time.Time
	PracticeEventData
}

// SectionStats aggregates practice events for one section.
type SectionStats struct {
	Section       string
	Attempts      int
	AvgPercent    float64
	BestPercent   int
	LastPracticed time.Time
}

// EventRepo provides append and query access to practice history.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendPracticeEvent(ctx context.Context, data PracticeEventData) error

	// QueryPracticeEvents returns matching events, newest first.
	QueryPracticeEvents(ctx context.Context, opts QueryOpts) ([]PracticeEvent, error)

	// SectionStats returns one row per practiced section, ordered by
	// section name.
	SectionStats(ctx context.Context) ([]SectionStats, error)

	// Reset deletes all history.
	Reset(ctx context.Context) error
}
