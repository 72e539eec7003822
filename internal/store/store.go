package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db  *sql.DB
	seq *sequencer
	now func() time.Time
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	seq, err := newSequencer(context.Background(), db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, seq: seq, now: time.Now}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq, now: s.now}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS meta (
		key   TEXT    PRIMARY KEY,
		value INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence   INTEGER NOT NULL UNIQUE,
		timestamp  INTEGER NOT NULL,
		session_id TEXT    NOT NULL,
		section    TEXT    NOT NULL,
		entry_id   TEXT    NOT NULL,
		action     TEXT    NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS practice_events (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence    INTEGER NOT NULL UNIQUE,
		timestamp   INTEGER NOT NULL,
		session_id  TEXT    NOT NULL,
		section     TEXT    NOT NULL,
		entry_id    TEXT    NOT NULL,
		activity    TEXT    NOT NULL,
		score       INTEGER NOT NULL,
		total       INTEGER NOT NULL,
		percent     INTEGER NOT NULL,
		wpm         INTEGER NOT NULL DEFAULT 0,
		accuracy    INTEGER NOT NULL DEFAULT 0,
		target_met  INTEGER NOT NULL DEFAULT 0,
		detail      TEXT    NOT NULL DEFAULT '',
		duration_ms INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS practice_events_section ON practice_events (section)`,
	`CREATE INDEX IF NOT EXISTS practice_events_timestamp ON practice_events (timestamp)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. PARLEY_DB environment variable
// 2. $XDG_DATA_HOME/parley/parley.db
// 3. ~/.local/share/parley/parley.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("PARLEY_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "parley", "parley.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
