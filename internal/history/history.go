// Package history keeps a SQLite record of every successful repository load:
// one snapshot row per load and the date each repository was first seen.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/pressly/goose/v3"

	"github.com/stahnma/gh-repopanel/internal/github"
	"github.com/stahnma/gh-repopanel/internal/history/migrations"
)

// timeLayout is fixed-width so stored timestamps compare lexically.
const timeLayout = "2006-01-02T15:04:05Z"

// Snapshot is one recorded load.
type Snapshot struct {
	ID      string    `json:"id"`
	Handle  string    `json:"handle"`
	TakenAt time.Time `json:"taken_at"`
	Total   int       `json:"total"`
}

// Sighting is the first time a repository appeared in a load.
type Sighting struct {
	Name      string    `json:"name"`
	FirstSeen time.Time `json:"first_seen"`
}

// Store is a load history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for new snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// RunMigrations applies the embedded schema migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the database at dsn and migrates it.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	// A single connection keeps ":memory:" databases coherent and serializes writers.
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a snapshot of records for handle and marks each repository
// as seen. A repository's first-seen date only ever moves earlier.
func (s *Store) Record(ctx context.Context, handle string, records []github.Record) error {
	taken := s.now().UTC().Format(timeLayout)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, handle, taken_at, total) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), handle, taken, len(records)); err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO repositories (handle, name, first_seen) VALUES (?, ?, ?)
		ON CONFLICT (handle, name) DO UPDATE SET first_seen = MIN(first_seen, excluded.first_seen)`)
	if err != nil {
		return fmt.Errorf("preparing repository upsert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, handle, r.Name, taken); err != nil {
			return fmt.Errorf("recording repository %s: %w", r.Name, err)
		}
	}
	return tx.Commit()
}

// Snapshots returns up to limit snapshots for handle, newest first.
// A non-positive limit returns all of them.
func (s *Store) Snapshots(ctx context.Context, handle string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, handle, taken_at, total FROM snapshots
		WHERE handle = ?
		ORDER BY taken_at DESC, rowid DESC
		LIMIT ?`, handle, limit)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var taken string
		if err := rows.Scan(&snap.ID, &snap.Handle, &taken, &snap.Total); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		if snap.TakenAt, err = time.Parse(timeLayout, taken); err != nil {
			return nil, fmt.Errorf("parsing snapshot time %q: %w", taken, err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// FirstSeen returns every repository recorded for handle with the time it
// first appeared, oldest first.
func (s *Store) FirstSeen(ctx context.Context, handle string) ([]Sighting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, first_seen FROM repositories
		WHERE handle = ?
		ORDER BY first_seen ASC, name ASC`, handle)
	if err != nil {
		return nil, fmt.Errorf("querying repositories: %w", err)
	}
	defer rows.Close()

	var out []Sighting
	for rows.Next() {
		var sg Sighting
		var seen string
		if err := rows.Scan(&sg.Name, &seen); err != nil {
			return nil, fmt.Errorf("scanning repository: %w", err)
		}
		if sg.FirstSeen, err = time.Parse(timeLayout, seen); err != nil {
			return nil, fmt.Errorf("parsing first-seen time %q: %w", seen, err)
		}
		out = append(out, sg)
	}
	return out, rows.Err()
}
