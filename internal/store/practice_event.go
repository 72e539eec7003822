package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const (
	sessionEventsTable  = "session_events"
	practiceEventsTable = "practice_events"
)

var practiceColumns = []string{
	"sequence", "timestamp", "session_id", "section", "entry_id", "activity",
	"score", "total", "percent", "wpm", "accuracy", "target_met", "detail", "duration_ms",
}

// eventRepo implements EventRepo with ent's SQL builders over database/sql.
type eventRepo struct {
	db  *sql.DB
	seq *sequencer
	now func() time.Time
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(sessionEventsTable).
		Columns("sequence", "timestamp", "session_id", "section", "entry_id", "action").
		Values(seqNum, r.now().UnixMilli(), data.SessionID, data.Section, data.EntryID, data.Action).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendPracticeEvent(ctx context.Context, data PracticeEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(practiceEventsTable).
		Columns(practiceColumns...).
		Values(
			seqNum, r.now().UnixMilli(), data.SessionID, data.Section, data.EntryID, data.Activity,
			data.Score, data.Total, data.Percent(), data.WPM, data.Accuracy, data.TargetMet,
			data.Detail, data.Duration.Milliseconds(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save practice event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryPracticeEvents(ctx context.Context, opts QueryOpts) ([]PracticeEvent, error) {
	sel := builder().Select(practiceColumns...).
		From(entsql.Table(practiceEventsTable)).
		OrderBy(entsql.Desc("sequence"))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query practice events: %w", err)
	}
	defer rows.Close()

	var events []PracticeEvent
	for rows.Next() {
		var (
			e         PracticeEvent
			ts, durMs int64
			percent   int
		)
		err := rows.Scan(
			&e.Sequence, &ts, &e.SessionID, &e.Section, &e.EntryID, &e.Activity,
			&e.Score, &e.Total, &percent, &e.WPM, &e.Accuracy, &e.TargetMet,
			&e.Detail, &durMs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan practice event: %w", err)
		}
		e.Timestamp = time.UnixMilli(ts)
		e.Duration = time.Duration(durMs) * time.Millisecond
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query practice events: %w", err)
	}
	return events, nil
}

func (r *eventRepo) SectionStats(ctx context.Context) ([]SectionStats, error) {
	query, args := builder().Select(
		"section",
		entsql.Count("*"),
		entsql.Avg("percent"),
		entsql.Max("percent"),
		entsql.Max("timestamp"),
	).
		From(entsql.Table(practiceEventsTable)).
		GroupBy("section").
		OrderBy("section").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query section stats: %w", err)
	}
	defer rows.Close()

	var stats []SectionStats
	for rows.Next() {
		var (
			s    SectionStats
			avg  sql.NullFloat64
			best sql.NullInt64
			last sql.NullInt64
		)
		if err := rows.Scan(&s.Section, &s.Attempts, &avg, &best, &last); err != nil {
			return nil, fmt.Errorf("scan section stats: %w", err)
		}
		s.AvgPercent = avg.Float64
		s.BestPercent = int(best.Int64)
		if last.Valid {
			s.LastPracticed = time.UnixMilli(last.Int64)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query section stats: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) Reset(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{practiceEventsTable, sessionEventsTable} {
		query, args := builder().Delete(table).Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}
