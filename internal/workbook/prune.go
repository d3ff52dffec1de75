package workbook

import "github.com/xuri/excelize/v2"

// PruneHiddenXLSX removes hidden rows from workbook bytes in place, editing
// the original file so formatting and formulas survive. Rows are removed
// bottom-up so indices stay valid; the header row is never removed.
// Returns the edited workbook and the number of rows removed.
func PruneHiddenXLSX(raw []byte) ([]byte, int, error) {
	removed := 0

	out, err := EditXLSX(raw, func(f *excelize.File) error {
		for _, sheet := range f.GetSheetList() {
			rows, err := f.GetRows(sheet)
			if err != nil {
				return err
			}
			for r := len(rows); r >= 2; r-- {
				visible, err := f.GetRowVisible(sheet, r)
				if err != nil || visible {
					continue
				}
				if err := f.RemoveRow(sheet, r); err != nil {
					return err
				}
				removed++
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return out, removed, nil
}
