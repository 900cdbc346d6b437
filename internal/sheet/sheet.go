// Package sheet opens tabular source files and resolves configured column
// names to positional indices.
package sheet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// Errors fatal to the current poll.
var (
	ErrSourceNotFound     = errors.New("source file not found")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
	ErrTimeColumnNotFound = errors.New("time column not found")
)

// Sheet holds the decoded contents of one tabular source file. The first
// row of the file is the header; Rows returns only the data rows that
// follow it, in source order.
type Sheet struct {
	header []string
	rows   [][]any
}

// Open reads the file at path, dispatching on its extension. Supported
// formats are the zip/XML workbook format (.xlsx) and the legacy binary
// format (.xls).
func Open(path string) (*Sheet, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("stat source: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return openXLSX(path)
	case ".xls":
		return openXLS(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Header returns the header row cells.
func (s *Sheet) Header() []string {
	return s.header
}

// Rows returns the data rows. A row may be shorter than the header when
// its trailing cells are empty.
func (s *Sheet) Rows() [][]any {
	return s.rows
}

// ContentColumn pairs a configured content column name with its resolved
// position in the sheet.
type ContentColumn struct {
	Name  string
	Index int
}

// Columns is the index mapping produced by ResolveColumns. It is resolved
// once per open and passed to extraction, never re-derived per row.
type Columns struct {
	Time    int
	Content []ContentColumn
}

// ResolveColumns matches the configured column names against the header by
// exact, case-sensitive string equality. A missing time column is fatal;
// content columns missing from the header are simply left out of the
// mapping, so extracted records carry no field for them.
func (s *Sheet) ResolveColumns(timeColumn string, contentColumns []string) (Columns, error) {
	positions := make(map[string]int, len(s.header))
	for i, h := range s.header {
		if _, ok := positions[h]; !ok {
			positions[h] = i
		}
	}

	timeIdx, ok := positions[timeColumn]
	if !ok {
		return Columns{}, fmt.Errorf("%w: %q", ErrTimeColumnNotFound, timeColumn)
	}

	cols := Columns{Time: timeIdx}
	for _, name := range contentColumns {
		if idx, ok := positions[name]; ok {
			cols.Content = append(cols.Content, ContentColumn{Name: name, Index: idx})
		}
	}
	return cols, nil
}

func openXLSX(path string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	name := f.GetSheetName(f.GetActiveSheetIndex())
	raw, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read xlsx rows: %w", err)
	}
	if len(raw) == 0 {
		return &Sheet{}, nil
	}

	s := &Sheet{header: raw[0], rows: make([][]any, 0, len(raw)-1)}
	for _, r := range raw[1:] {
		row := make([]any, len(r))
		for i, cell := range r {
			row[i] = cell
		}
		s.rows = append(s.rows, row)
	}
	return s, nil
}

func openXLS(path string) (*Sheet, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}

	ws := wb.GetSheet(0)
	if ws == nil {
		return &Sheet{}, nil
	}

	s := &Sheet{}
	for i := 0; i <= int(ws.MaxRow); i++ {
		r := ws.Row(i)
		if r == nil {
			if i > 0 {
				s.rows = append(s.rows, nil)
			}
			continue
		}
		row := make([]any, 0, r.LastCol())
		for j := 0; j < r.LastCol(); j++ {
			row = append(row, r.Col(j))
		}
		if i == 0 {
			header := make([]string, len(row))
			for k, c := range row {
				header[k], _ = c.(string)
			}
			s.header = header
			continue
		}
		s.rows = append(s.rows, row)
	}
	return s, nil
}
