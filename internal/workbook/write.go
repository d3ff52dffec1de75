package workbook

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/sheetops/sheetops/internal/profile"
)

// SaveXLSX serializes the workbook model to .xlsx bytes. Cell values are
// written with their native types; declared formats and formulas from the
// source are not carried over.
func SaveXLSX(wb *Workbook) ([]byte, error) {
	if len(wb.Sheets) == 0 {
		return nil, ErrNoSheets
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range wb.Sheets {
		name := sheet.Name
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
				return nil, fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, fmt.Errorf("add sheet %s: %w", name, err)
			}
		}

		if err := writeSheet(f, name, sheet); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, name string, sheet *Sheet) error {
	if len(sheet.Headers) > 0 {
		header := make([]interface{}, len(sheet.Headers))
		for i, h := range sheet.Headers {
			header[i] = h
		}
		if err := f.SetSheetRow(name, "A1", &header); err != nil {
			return err
		}
	}

	for r, row := range sheet.Rows {
		axis, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for c, cell := range row {
			values[c] = cellValue(cell)
		}
		if err := f.SetSheetRow(name, axis, &values); err != nil {
			return err
		}
	}

	return nil
}

// cellValue converts a model cell to the value excelize should store.
func cellValue(c profile.Cell) interface{} {
	switch c.Kind {
	case profile.KindEmpty:
		return nil
	case profile.KindNumber:
		return c.Number
	case profile.KindDate:
		return c.Date
	case profile.KindBool:
		return c.Bool
	default:
		return profile.CellString(c)
	}
}

// WriteCSV writes one sheet as CSV, header row first.
func WriteCSV(sheet *Sheet, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(sheet.Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(sheet.Headers))
	for _, row := range sheet.Rows {
		for c := range record {
			record[c] = ""
			if c < len(row) {
				record[c] = profile.CellString(row[c])
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
