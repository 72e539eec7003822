package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/parley/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "parley.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// withClock pins the store clock and returns a function that advances it.
func withClock(s *Store, start time.Time) func(time.Duration) {
	now := start
	s.now = func() time.Time { return now }
	return func(d time.Duration) { now = now.Add(d) }
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"session_events", "practice_events", "meta"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parley.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.EventRepo().AppendPracticeEvent(ctx, PracticeEventData{Section: "grammar", Score: 1, Total: 2}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	events, err := s.EventRepo().QueryPracticeEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Sequence != 1 {
		t.Fatalf("events = %+v", events)
	}
	if err := s.EventRepo().AppendPracticeEvent(ctx, PracticeEventData{Section: "grammar"}); err != nil {
		t.Fatal(err)
	}
	events, _ = s.EventRepo().QueryPracticeEvents(ctx, QueryOpts{Limit: 1})
	if events[0].Sequence != 2 {
		t.Errorf("sequence after reopen = %d, want 2", events[0].Sequence)
	}
}

func TestSequencer(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequencer(ctx, s.DB())
	if err != nil {
		t.Fatalf("new sequencer: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestSequenceSurvivesReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.AppendPracticeEvent(ctx, PracticeEventData{Section: "quiz"}); err != nil {
			t.Fatal(err)
		}
	}
	if err := repo.Reset(ctx); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendPracticeEvent(ctx, PracticeEventData{Section: "quiz"}); err != nil {
		t.Fatal(err)
	}
	events, err := repo.QueryPracticeEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Sequence != 4 {
		t.Errorf("events after reset = %+v, want one event with sequence 4", events)
	}
}

func TestSequenceSharedAcrossEventTypes(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Section: "typing", Action: ActionStart}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendPracticeEvent(ctx, PracticeEventData{SessionID: "s1", Section: "typing"}); err != nil {
		t.Fatal(err)
	}

	events, err := repo.QueryPracticeEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Sequence != 2 {
		t.Errorf("practice event sequence = %+v, want 2", events)
	}
}

func TestPracticeEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	at := time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC)
	withClock(s, at)
	repo := s.EventRepo()
	ctx := context.Background()

	in := PracticeEventData{
		SessionID: "abc",
		Section:   "typing",
		EntryID:   "home-row",
		Activity:  "practice",
		Score:     82,
		Total:     100,
		WPM:       6,
		Accuracy:  82,
		TargetMet: true,
		Detail:    "6 wpm, 82% accuracy",
		Duration:  30 * time.Second,
	}
	if err := repo.AppendPracticeEvent(ctx, in); err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryPracticeEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	got := events[0]
	if got.PracticeEventData != in {
		t.Errorf("data = %+v, want %+v", got.PracticeEventData, in)
	}
	if !got.Timestamp.Equal(at) {
		t.Errorf("timestamp = %v, want %v", got.Timestamp, at)
	}
}

func TestQueryPracticeEvents_Filters(t *testing.T) {
	s := openTestStore(t)
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	advance := withClock(s, start)
	repo := s.EventRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.AppendPracticeEvent(ctx, PracticeEventData{Section: "grammar", Score: i, Total: 4}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		advance(time.Hour)
	}

	tests := []struct {
		name string
		opts QueryOpts
		want []int64
	}{
		{"all newest first", QueryOpts{}, []int64{5, 4, 3, 2, 1}},
		{"limit", QueryOpts{Limit: 2}, []int64{5, 4}},
		{"after", QueryOpts{After: 3}, []int64{5, 4}},
		{"from", QueryOpts{From: start.Add(3 * time.Hour)}, []int64{5, 4}},
		{"to", QueryOpts{To: start.Add(time.Hour)}, []int64{2, 1}},
		{"window", QueryOpts{From: start.Add(time.Hour), To: start.Add(3 * time.Hour), Limit: 2}, []int64{4, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := repo.QueryPracticeEvents(ctx, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			var got []int64
			for _, e := range events {
				got = append(got, e.Sequence)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("sequences = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("sequences = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}

func TestSectionStats(t *testing.T) {
	s := openTestStore(t)
	start := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	advance := withClock(s, start)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []PracticeEventData{
		{Section: "grammar", Score: 2, Total: 3},
		{Section: "grammar", Score: 3, Total: 3},
		{Section: "vocabulary", Score: 60, Total: 60},
	}
	for _, e := range events {
		if err := repo.AppendPracticeEvent(ctx, e); err != nil {
			t.Fatal(err)
		}
		advance(time.Minute)
	}

	stats, err := repo.SectionStats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats = %+v", stats)
	}
	g := stats[0]
	if g.Section != "grammar" || g.Attempts != 2 || g.BestPercent != 100 {
		t.Errorf("grammar = %+v", g)
	}
	if g.AvgPercent != 83.5 {
		t.Errorf("grammar avg = %v, want 83.5", g.AvgPercent)
	}
	if !g.LastPracticed.Equal(start.Add(time.Minute)) {
		t.Errorf("grammar last = %v", g.LastPracticed)
	}
	if v := stats[1]; v.Section != "vocabulary" || v.Attempts != 1 || v.AvgPercent != 100 {
		t.Errorf("vocabulary = %+v", v)
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "x", Action: ActionStart})
	repo.AppendPracticeEvent(ctx, PracticeEventData{SessionID: "x", Section: "grammar"})

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	events, _ := repo.QueryPracticeEvents(ctx, QueryOpts{})
	stats, _ := repo.SectionStats(ctx)
	if len(events) != 0 || len(stats) != 0 {
		t.Errorf("after reset events=%v stats=%v", events, stats)
	}
	var n int
	s.DB().QueryRow("SELECT COUNT(*) FROM session_events").Scan(&n)
	if n != 0 {
		t.Errorf("session events after reset = %d", n)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("PARLEY_DB", filepath.Join(dir, "custom", "x.db"))
	p, err := DefaultDBPath()
	if err != nil || p != filepath.Join(dir, "custom", "x.db") {
		t.Errorf("PARLEY_DB path = %q, %v", p, err)
	}

	t.Setenv("PARLEY_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	if err != nil || p != filepath.Join(dir, "parley", "parley.db") {
		t.Errorf("XDG path = %q, %v", p, err)
	}
}

type failingRepo struct {
	EventRepo
	calls int
}

func (f *failingRepo) AppendSessionEvent(context.Context, SessionEventData) error {
	f.calls++
	return errors.New("disk full")
}

func (f *failingRepo) AppendPracticeEvent(context.Context, PracticeEventData) error {
	f.calls++
	return errors.New("disk full")
}

func TestRecorder(t *testing.T) {
	s := openTestStore(t)
	rec := NewRecorder(s.EventRepo())
	ps := &session.PracticeSession{ID: "sess-1", Section: session.SectionTyping}

	rec.SessionStarted(ps)
	rec.ActivityFinished(session.ActivityResult{
		SessionID: "sess-1",
		Section:   session.SectionTyping,
		EntryID:   "home-row",
		Activity:  session.ViewPractice,
		Score:     82,
		Total:     100,
		WPM:       6,
		Accuracy:  82,
	})
	rec.SessionEnded(ps)

	events, err := s.EventRepo().QueryPracticeEvents(context.Background(), QueryOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %+v", events)
	}
	e := events[0]
	if e.Section != "typing" || e.Activity != "practice" || e.EntryID != "home-row" || e.WPM != 6 {
		t.Errorf("event = %+v", e)
	}

	var actions []string
	rows, err := s.DB().Query("SELECT action FROM session_events ORDER BY sequence")
	if err != nil {
		t.Fatal(err)
	}
	defer rows.Close()
	for rows.Next() {
		var a string
		rows.Scan(&a)
		actions = append(actions, a)
	}
	if len(actions) != 2 || actions[0] != ActionStart || actions[1] != ActionEnd {
		t.Errorf("actions = %v", actions)
	}
}

func TestRecorder_ErrorsAreSwallowed(t *testing.T) {
	repo := &failingRepo{}
	rec := NewRecorder(repo)
	rec.SessionStarted(&session.PracticeSession{ID: "x"})
	rec.ActivityFinished(session.ActivityResult{SessionID: "x"})
	if repo.calls != 2 {
		t.Errorf("calls = %d, want 2", repo.calls)
	}
}
