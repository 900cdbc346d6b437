// Package loader runs the cache-first extraction sequence for one poll.
package loader

import (
	"log/slog"
	"time"

	"sheetwatch/internal/cache"
	"sheetwatch/internal/extract"
	"sheetwatch/internal/model"
	"sheetwatch/internal/sheet"
)

// Loader loads today's records, preferring the daily cache over a full
// re-parse of the source file.
type Loader struct {
	sourcePath     string
	timeColumn     string
	contentColumns []string
	cache          *cache.Cache
	log            *slog.Logger
}

// New creates a Loader for the given source file and column configuration.
func New(sourcePath, timeColumn string, contentColumns []string, c *cache.Cache, log *slog.Logger) *Loader {
	return &Loader{
		sourcePath:     sourcePath,
		timeColumn:     timeColumn,
		contentColumns: contentColumns,
		cache:          c,
		log:            log,
	}
}

// LoadToday returns the snapshot of records dated today. When the cache
// holds an entry for today it is returned directly and fromCache is true;
// otherwise the source is opened, columns resolved, records extracted and
// the cache rewritten. The cache is only written after a fully successful
// extraction, so a failing poll leaves the previous entry untouched.
func (l *Loader) LoadToday(today time.Time) (snap model.Snapshot, fromCache bool, err error) {
	if cached, ok := l.cache.Read(today); ok {
		return cached, true, nil
	}

	s, err := sheet.Open(l.sourcePath)
	if err != nil {
		return nil, false, err
	}

	cols, err := s.ResolveColumns(l.timeColumn, l.contentColumns)
	if err != nil {
		return nil, false, err
	}

	snap = extract.Extract(s, cols, today, l.log)

	if err := l.cache.Write(today, snap); err != nil {
		// The snapshot itself is good; a stale or missing cache only
		// costs a re-parse on the next poll.
		l.log.Warn("write cache", "path", l.sourcePath, "error", err)
	}
	return snap, false, nil
}
