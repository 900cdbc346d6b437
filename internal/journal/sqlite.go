package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver registration.

	"sheetwatch/migrations"
)

const timeLayout = "2006-01-02T15:04:05Z"

// SQLite implements Store backed by a SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and runs pending migrations.
func NewSQLite(dsn string) (*SQLite, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Append inserts a journal entry and populates its ID.
func (s *SQLite) Append(ctx context.Context, e *Entry) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO polls (polled_at, success, message, record_count, new_count)
		 VALUES (?, ?, ?, ?, ?)`,
		e.PolledAt.UTC().Format(timeLayout), boolToInt(e.Success), e.Message, e.RecordCount, e.NewCount,
	)
	if err != nil {
		return fmt.Errorf("insert poll: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	e.ID = id
	return nil
}

// Recent returns the n most recent entries, newest first.
func (s *SQLite) Recent(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, polled_at, success, message, record_count, new_count
		 FROM polls ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query polls: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var polledAt string
		var success int
		if err := rows.Scan(&e.ID, &polledAt, &success, &e.Message, &e.RecordCount, &e.NewCount); err != nil {
			return nil, fmt.Errorf("scan poll: %w", err)
		}
		e.Success = success == 1
		e.PolledAt, _ = time.Parse(timeLayout, polledAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
