// Package workbook loads .xlsx and .csv files into a common sheet model and
// implements the bulk cell operations run against them: whitespace cleanup,
// blank filling, and hidden-row pruning. The model is row-major; columns are
// materialized on demand for profiling.
package workbook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sheetops/sheetops/internal/profile"
)

// ErrUnsupportedFormat is returned for file extensions the loader does not
// understand.
var ErrUnsupportedFormat = errors.New("workbook: unsupported file format")

// ErrNoSheets is returned when a workbook contains no sheets at all.
var ErrNoSheets = errors.New("workbook: no sheets")

// Workbook is an in-memory spreadsheet: one or more sheets plus source
// metadata used in generated reports.
type Workbook struct {
	// FileName is the name of the source file as uploaded.
	FileName string

	// SourceSize is the byte size of the source file.
	SourceSize int64

	// Sheets in workbook order. CSV sources always yield exactly one sheet.
	Sheets []*Sheet
}

// Sheet holds one tabular range. Rows exclude the header row and every row
// is padded to the header width, so cell access never bounds-checks.
type Sheet struct {
	Name    string
	Headers []string

	// Formats holds the declared number format per column, "" when the
	// source carries none. CSV sheets have no formats.
	Formats []string

	// Rows are the data rows in source order.
	Rows [][]profile.Cell

	// Hidden flags data rows hidden in the source workbook, parallel to
	// Rows. Nil for sources without row visibility (CSV).
	Hidden []bool
}

// Sheet returns the named sheet, or nil when absent.
func (w *Workbook) Sheet(name string) *Sheet {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// First returns the first sheet of the workbook.
func (w *Workbook) First() (*Sheet, error) {
	if len(w.Sheets) == 0 {
		return nil, ErrNoSheets
	}
	return w.Sheets[0], nil
}

// Column materializes column i as a profiler input. The returned column
// shares no mutable state with the sheet beyond the cell values themselves.
func (s *Sheet) Column(i int) (*profile.Column, error) {
	if i < 0 || i >= len(s.Headers) {
		return nil, fmt.Errorf("workbook: column %d out of range (%d columns)", i, len(s.Headers))
	}

	col := &profile.Column{
		Name:  s.Headers[i],
		Cells: make([]profile.Cell, len(s.Rows)),
	}
	if i < len(s.Formats) {
		col.Format = s.Formats[i]
	}
	for r, row := range s.Rows {
		col.Cells[r] = row[i]
	}
	return col, nil
}

// RowHidden reports whether data row i was hidden in the source.
func (s *Sheet) RowHidden(i int) bool {
	return i < len(s.Hidden) && s.Hidden[i]
}

// padRow extends row to width columns with empty cells.
func padRow(row []profile.Cell, width int) []profile.Cell {
	for len(row) < width {
		row = append(row, profile.EmptyCell())
	}
	return row
}

// headerName normalizes a raw header cell, substituting a positional name
// for blank headers the way exported sheets usually need.
func headerName(raw string, idx int) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return fmt.Sprintf("Column_%d", idx+1)
	}
	return name
}
