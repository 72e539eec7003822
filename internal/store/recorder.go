package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/parley/internal/session"
)

const recordTimeout = 2 * time.Second

// Recorder persists session lifecycle and activity results. It implements
// session.Listener. Write failures are logged and otherwise ignored so
// practice never stops because history could not be saved.
type Recorder struct {
	repo EventRepo
}

// NewRecorder returns a Recorder writing to repo.
func NewRecorder(repo EventRepo) *Recorder {
	return &Recorder{repo: repo}
}

var _ session.Listener = (*Recorder)(nil)

func (r *Recorder) SessionStarted(s *session.PracticeSession) {
	r.session(s, ActionStart)
}

func (r *Recorder) SessionEnded(s *session.PracticeSession) {
	r.session(s, ActionEnd)
}

func (r *Recorder) session(s *session.PracticeSession, action string) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	err := r.repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: s.ID,
		Section:   s.Section.String(),
		EntryID:   s.EntryID(),
		Action:    action,
	})
	if err != nil {
		slog.Warn("record session event", "session", s.ID, "action", action, "err", err)
	}
}

func (r *Recorder) ActivityFinished(res session.ActivityResult) {
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	err := r.repo.AppendPracticeEvent(ctx, PracticeEventData{
		SessionID: res.SessionID,
		Section:   res.Section.String(),
		EntryID:   res.EntryID,
		Activity:  res.Activity.String(),
		Score:     res.Score,
		Total:     res.Total,
		WPM:       res.WPM,
		Accuracy:  res.Accuracy,
		TargetMet: res.TargetMet,
		Detail:    res.Detail,
		Duration:  res.Duration,
	})
	if err != nil {
		slog.Warn("record practice event", "session", res.SessionID, "activity", res.Activity, "err", err)
	}
}
