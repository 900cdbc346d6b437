// Package journal persists the outcome of every poll for later inspection.
package journal

import (
	"context"
	"time"
)

// Entry records one poll's outcome.
type Entry struct {
	ID          int64
	PolledAt    time.Time
	Success     bool
	Message     string
	RecordCount int
	NewCount    int
}

// Store is the interface for poll journal persistence.
type Store interface {
	Append(ctx context.Context, e *Entry) error
	Recent(ctx context.Context, n int) ([]Entry, error)
	Close() error
}
