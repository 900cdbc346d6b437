// Package model defines the domain types used across the application.
package model

import (
	"fmt"
	"time"
)

// TimeLayout is the canonical serialization form for record timestamps.
// It sorts lexicographically in chronological order and round-trips
// without loss at second precision.
const TimeLayout = "2006-01-02T15:04:05"

// DayLayout is the serialization form for calendar dates.
const DayLayout = "2006-01-02"

// Record is one entry from the source sheet whose timestamp falls on the
// day it was extracted for. Records are rebuilt on every extraction pass
// and never mutated in place.
type Record struct {
	// Timestamp is the normalized instant from the sheet's time column.
	Timestamp time.Time
	// Fields maps a configured content column name to that row's cell
	// value (string, float64 or bool), or nil when the row was too short
	// to provide one.
	Fields map[string]any
}

// Key derives the identity of a record for change detection: the canonical
// timestamp string joined with the value of the name-like column.
//
// Two distinct rows sharing both timestamp and name collide under this key
// and are treated as the same entry. That is a known limitation kept for
// compatibility with the data this tool watches.
func (r Record) Key(nameColumn string) string {
	name := ""
	if v, ok := r.Fields[nameColumn]; ok && v != nil {
		name = fmt.Sprint(v)
	}
	return r.Timestamp.Format(TimeLayout) + "|" + name
}

// Snapshot is the ordered result of one extraction pass. Order follows
// source-row order.
type Snapshot []Record

// PollResult is the outcome of a single poll, returned synchronously from
// an on-demand poll and emitted to the consumer on every background
// iteration.
type PollResult struct {
	Success  bool
	Message  string
	Snapshot Snapshot
	// New holds the records present in Snapshot that were absent from the
	// previous poll's snapshot.
	New Snapshot
}
