// Package extract produces the snapshot of records dated today from a
// decoded sheet.
package extract

import (
	"log/slog"
	"strings"
	"time"

	"sheetwatch/internal/model"
	"sheetwatch/internal/sheet"
	"sheetwatch/internal/timeparse"
)

// RowSource yields decoded data rows in source order.
type RowSource interface {
	Rows() [][]any
}

// Extract walks every data row and keeps the ones whose normalized
// timestamp falls on today. Rows with an empty time cell are skipped
// silently; rows whose time cell cannot be parsed are logged and skipped.
// The result preserves source-row order.
func Extract(src RowSource, cols sheet.Columns, today time.Time, log *slog.Logger) model.Snapshot {
	y, m, d := today.Date()

	var snap model.Snapshot
	for _, row := range src.Rows() {
		var cell any
		if cols.Time < len(row) {
			cell = row[cols.Time]
		}
		if isEmpty(cell) {
			continue
		}

		ts, err := timeparse.Normalize(cell)
		if err != nil {
			log.Warn("skipping row with unparseable time", "value", cell)
			continue
		}

		ry, rm, rd := ts.Date()
		if ry != y || rm != m || rd != d {
			continue
		}

		fields := make(map[string]any, len(cols.Content))
		for _, cc := range cols.Content {
			if cc.Index < len(row) {
				fields[cc.Name] = row[cc.Index]
			} else {
				fields[cc.Name] = nil
			}
		}
		snap = append(snap, model.Record{Timestamp: ts, Fields: fields})
	}
	return snap
}

func isEmpty(cell any) bool {
	if cell == nil {
		return true
	}
	s, ok := cell.(string)
	return ok && strings.TrimSpace(s) == ""
}
