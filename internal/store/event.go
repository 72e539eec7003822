package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	metaTable   = "meta"
	sequenceKey = "next_sequence"
)

// sequencer hands out the sequence number that orders session and practice
// events against each other. The counter lives in the meta table and
// survives Reset, so numbers never repeat within one database.
type sequencer struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequencer(ctx context.Context, db *sql.DB) (*sequencer, error) {
	query, args := builder().Insert(metaTable).
		Columns("key", "value").
		Values(sequenceKey, 1).
		OnConflict(entsql.ConflictColumns("key"), entsql.DoNothing()).
		Query()
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}
	return &sequencer{db: db}, nil
}

// Next reserves and returns one sequence number.
func (s *sequencer) Next(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	query, args := builder().Select("value").
		From(entsql.Table(metaTable)).
		Where(entsql.EQ("key", sequenceKey)).
		Query()
	var next int64
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&next); err != nil {
		return 0, err
	}

	query, args = builder().Update(metaTable).
		Set("value", next+1).
		Where(entsql.EQ("key", sequenceKey)).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, err
	}
	return next, tx.Commit()
}
