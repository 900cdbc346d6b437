// Package timeparse normalizes heterogeneous sheet cell values into
// canonical timestamps.
package timeparse

import (
	"fmt"
	"strings"
	"time"
)

// layouts are tried strictly in order; the first successful parse wins.
// The leading two are the forms the watched sheets actually use, the rest
// cover values that spreadsheet number formats commonly emit.
var layouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006",
	"1/2/06 15:04",
}

// UnparseableError reports a cell value that matched none of the known
// timestamp representations. It carries the offending raw value.
type UnparseableError struct {
	Raw any
}

func (e *UnparseableError) Error() string {
	return fmt.Sprintf("unparseable timestamp %q", fmt.Sprint(e.Raw))
}

// Normalize converts a cell value of unknown representation into a
// canonical instant in local time. Native date/datetime values convert
// directly (a date-only value is already midnight); strings are tried
// against the layout list in priority order.
func Normalize(cell any) (time.Time, error) {
	switch v := cell.(type) {
	case time.Time:
		return v, nil
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range layouts {
			if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
				return t, nil
			}
		}
	}
	return time.Time{}, &UnparseableError{Raw: cell}
}
