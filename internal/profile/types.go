// Package profile implements heuristic column profiling for tabular data.
// Given a column of heterogeneous cell values it infers a semantic type,
// grades data completeness, picks representative sample values, and derives
// a usage hint from the column name. All results are computed from a bounded
// prefix of the column and are ephemeral; nothing is persisted here.
package profile

import (
	"errors"
	"fmt"
	"time"
)

// ErrNilColumn is returned when a profiling operation receives a nil column.
// Callers generating reports should skip the offending column and continue.
var ErrNilColumn = errors.New("profile: nil column")

// CellKind is the tag of a Cell's variant.
type CellKind int

const (
	KindEmpty CellKind = iota
	KindNumber
	KindDate
	KindBool
	KindText
	KindFormula
)

// Cell is a single dynamically-typed spreadsheet value.
// Exactly one payload field is meaningful, selected by Kind.
// Text holds the raw string for KindText and the formula body for KindFormula.
type Cell struct {
	Kind   CellKind
	Number float64
	Date   time.Time
	Bool   bool
	Text   string
}

// EmptyCell returns a cell with no value.
func EmptyCell() Cell { return Cell{Kind: KindEmpty} }

// NumberCell returns a numeric cell.
func NumberCell(v float64) Cell { return Cell{Kind: KindNumber, Number: v} }

// DateCell returns a date cell.
func DateCell(t time.Time) Cell { return Cell{Kind: KindDate, Date: t} }

// BoolCell returns a boolean cell.
func BoolCell(b bool) Cell { return Cell{Kind: KindBool, Bool: b} }

// TextCell returns a text cell.
func TextCell(s string) Cell { return Cell{Kind: KindText, Text: s} }

// FormulaCell returns a formula cell carrying the formula expression.
func FormulaCell(expr string) Cell { return Cell{Kind: KindFormula, Text: expr} }

// Column is an ordered sequence of cell values drawn from one field of a
// tabular range, plus an optional declared display format. Columns are
// immutable inputs: the profiler never mutates them, so the same Column may
// be profiled concurrently from multiple goroutines.
type Column struct {
	// Name is the header label of the column.
	Name string

	// Format is the declared number format string, if any.
	// Empty string and "General" both mean "no declared format".
	Format string

	// Cells are the data cells in row order, excluding the header.
	Cells []Cell
}

// TypeClass is the inferred semantic type of a column's data.
type TypeClass string

const (
	TypeEmpty      TypeClass = "empty"
	TypeNumber     TypeClass = "number"
	TypeCurrency   TypeClass = "currency"
	TypePercentage TypeClass = "percentage"
	TypeDate       TypeClass = "date"
	TypeFormula    TypeClass = "formula"
	TypeText       TypeClass = "text"
	TypeUnknown    TypeClass = "unknown"
)

// Label returns the human-readable form used in generated reports.
func (t TypeClass) Label() string {
	switch t {
	case TypeEmpty:
		return "Empty"
	case TypeNumber:
		return "Number"
	case TypeCurrency:
		return "Currency"
	case TypePercentage:
		return "Percentage"
	case TypeDate:
		return "Date"
	case TypeFormula:
		return "Formula"
	case TypeText:
		return "Text"
	}
	return "Unknown"
}

// QualityFlag is a coarse data-completeness grade.
type QualityFlag string

const (
	QualityClean   QualityFlag = "clean"
	QualityWarning QualityFlag = "warning"
	QualityError   QualityFlag = "error"
)

// Quality pairs a completeness flag with the empty/null percentage it was
// derived from. EmptyPercent is rounded to the nearest whole percent.
type Quality struct {
	Flag         QualityFlag `json:"flag"`
	EmptyPercent int         `json:"emptyPercent"`
}

// String renders the quality the way documentation reports display it.
func (q Quality) String() string {
	switch q.Flag {
	case QualityClean:
		return "Clean"
	case QualityWarning:
		return fmt.Sprintf("Warning (%d%% empty)", q.EmptyPercent)
	case QualityError:
		return fmt.Sprintf("Error (%d%% empty)", q.EmptyPercent)
	}
	return string(q.Flag)
}

// ColumnProfile is the complete result of profiling one column.
// All fields are derived from the same snapshot of the column within a
// single Profile call.
type ColumnProfile struct {
	Name    string    `json:"name"`
	Type    TypeClass `json:"type"`
	Quality Quality   `json:"quality"`
	Samples []string  `json:"samples"`
	Advice  string    `json:"advice"`
}
