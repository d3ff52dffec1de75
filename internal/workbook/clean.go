package workbook

import (
	"strings"

	"github.com/sheetops/sheetops/internal/profile"
)

// CleanOptions controls CleanCells behavior.
type CleanOptions struct {
	// TrimSpace removes leading and trailing whitespace from text cells.
	TrimSpace bool

	// CollapseSpaces folds interior whitespace runs into single spaces.
	CollapseSpaces bool

	// BlankTokens are text values normalized to empty cells, matched
	// case-insensitively after trimming.
	BlankTokens []string
}

// DefaultCleanOptions returns the cleanup behavior of the standard macro:
// trim, collapse, and blank out the usual null markers.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		TrimSpace:      true,
		CollapseSpaces: true,
		BlankTokens:    []string{"null", "n/a", "-"},
	}
}

// CleanCells normalizes the text cells of a sheet in place and returns the
// number of cells changed. Non-text cells are never touched.
func CleanCells(sheet *Sheet, opts CleanOptions) int {
	changed := 0

	for r, row := range sheet.Rows {
		for c, cell := range row {
			if cell.Kind != profile.KindText {
				continue
			}

			cleaned := cell.Text
			if opts.TrimSpace {
				cleaned = strings.TrimSpace(cleaned)
			}
			if opts.CollapseSpaces {
				cleaned = collapseSpaces(cleaned)
			}

			if cleaned == "" || isBlankToken(cleaned, opts.BlankTokens) {
				sheet.Rows[r][c] = profile.EmptyCell()
				changed++
				continue
			}

			if cleaned != cell.Text {
				sheet.Rows[r][c] = profile.TextCell(cleaned)
				changed++
			}
		}
	}

	return changed
}

// FillBlanks fills empty cells with the nearest non-empty value above them
// in the same column, the fill-down behavior of the blank-fill macro.
// Returns the number of cells filled. Leading blanks stay empty.
func FillBlanks(sheet *Sheet) int {
	filled := 0

	for c := 0; c < len(sheet.Headers); c++ {
		last := profile.EmptyCell()
		for r := range sheet.Rows {
			cell := sheet.Rows[r][c]
			if cell.Kind != profile.KindEmpty {
				last = cell
				continue
			}
			if last.Kind != profile.KindEmpty {
				sheet.Rows[r][c] = last
				filled++
			}
		}
	}

	return filled
}

// PruneHiddenRows drops data rows hidden in the source workbook and returns
// the number removed. Sheets without visibility data are left untouched.
func PruneHiddenRows(sheet *Sheet) int {
	if len(sheet.Hidden) == 0 {
		return 0
	}

	kept := sheet.Rows[:0]
	removed := 0
	for i, row := range sheet.Rows {
		if sheet.RowHidden(i) {
			removed++
			continue
		}
		kept = append(kept, row)
	}

	sheet.Rows = kept
	sheet.Hidden = make([]bool, len(kept))
	return removed
}

func collapseSpaces(s string) string {
	if !strings.ContainsAny(s, " \t\n\r") {
		return s
	}
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

func isBlankToken(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.EqualFold(s, tok) {
			return true
		}
	}
	return false
}
