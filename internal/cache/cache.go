// Package cache persists the most recent extraction result keyed by the
// calendar day it was computed for.
package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"sheetwatch/internal/model"
)

// Cache is a single-entry daily cache backed by one JSON file. There is no
// explicit invalidation: an entry stored for an earlier day fails the date
// comparison on read and is overwritten by the next successful extraction.
//
// Reads fail closed. A missing file, malformed JSON or an entry that does
// not round-trip is reported as a miss, never as an error; concurrent
// access is tolerated through whole-file replace semantics on write
// (single writer assumed).
type Cache struct {
	path string
	log  *slog.Logger
}

// New creates a cache stored at path.
func New(path string, log *slog.Logger) *Cache {
	return &Cache{path: path, log: log}
}

type entry struct {
	Day     string         `json:"day"`
	Records []cachedRecord `json:"records"`
}

type cachedRecord struct {
	Timestamp string         `json:"timestamp"`
	Fields    map[string]any `json:"fields"`
}

// Read returns the stored snapshot when the stored day equals today's
// calendar date, and a miss otherwise.
func (c *Cache) Read(today time.Time) (model.Snapshot, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.log.Debug("ignoring unreadable cache", "path", c.path, "error", err)
		return nil, false
	}
	if e.Day != today.Format(model.DayLayout) {
		return nil, false
	}

	snap := make(model.Snapshot, 0, len(e.Records))
	for _, r := range e.Records {
		ts, err := time.ParseInLocation(model.TimeLayout, r.Timestamp, time.Local)
		if err != nil {
			c.log.Debug("ignoring cache with malformed timestamp", "value", r.Timestamp)
			return nil, false
		}
		snap = append(snap, model.Record{Timestamp: ts, Fields: r.Fields})
	}
	return snap, true
}

// Write replaces the cache with the given snapshot tagged with today's
// date. The previous entry is discarded regardless of its day. The file is
// written to a temporary sibling and renamed into place so readers never
// observe a partial write.
func (c *Cache) Write(today time.Time, snap model.Snapshot) error {
	e := entry{
		Day:     today.Format(model.DayLayout),
		Records: make([]cachedRecord, 0, len(snap)),
	}
	for _, r := range snap {
		e.Records = append(e.Records, cachedRecord{
			Timestamp: r.Timestamp.Format(model.TimeLayout),
			Fields:    r.Fields,
		})
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create cache directory: %w", err)
		}
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace cache: %w", err)
	}
	return nil
}
