package workbook

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/sheetops/sheetops/internal/profile"
)

// builtinFormats maps the Office builtin number format IDs the loader cares
// about to representative format strings. Only currency, percentage, and
// date formats matter to profiling; everything else reads as "no format".
var builtinFormats = map[int]string{
	5:  "$#,##0",
	6:  "$#,##0",
	7:  "$#,##0.00",
	8:  "$#,##0.00",
	9:  "0%",
	10: "0.00%",
	14: "m/d/yy",
	15: "d-mmm-yy",
	16: "d-mmm",
	17: "mmm-yy",
	22: "m/d/yy h:mm",
	42: "$#,##0",
	44: "$#,##0.00",
}

// Load parses raw file bytes into a Workbook, dispatching on the file
// extension. Supported: .xlsx, .xlsm, .csv.
func Load(fileName string, data []byte) (*Workbook, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm":
		return loadExcel(fileName, data)
	case ".csv":
		return loadCSV(fileName, data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(fileName))
	}
}

func loadExcel(fileName string, data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	wb := &Workbook{
		FileName:   fileName,
		SourceSize: int64(len(data)),
	}

	for _, sheetName := range f.GetSheetList() {
		sheet, err := loadExcelSheet(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheetName, err)
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}

	if len(wb.Sheets) == 0 {
		return nil, ErrNoSheets
	}
	return wb, nil
}

func loadExcelSheet(f *excelize.File, name string) (*Sheet, error) {
	raw, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}

	sheet := &Sheet{Name: name}
	if len(raw) == 0 {
		return sheet, nil
	}

	sheet.Headers = make([]string, len(raw[0]))
	for i, h := range raw[0] {
		sheet.Headers[i] = headerName(h, i)
	}
	width := len(sheet.Headers)

	sheet.Formats = make([]string, width)
	for c := 0; c < width; c++ {
		sheet.Formats[c] = columnFormat(f, name, c)
	}

	for r, rawRow := range raw[1:] {
		// GetRows is 0-based on the slice; sheet coordinates are 1-based
		// and include the header row.
		sheetRow := r + 2

		row := make([]profile.Cell, 0, width)
		for c := 0; c < width && c < len(rawRow); c++ {
			row = append(row, readCell(f, name, c, sheetRow, rawRow[c]))
		}
		sheet.Rows = append(sheet.Rows, padRow(row, width))

		visible, err := f.GetRowVisible(name, sheetRow)
		if err != nil {
			visible = true
		}
		sheet.Hidden = append(sheet.Hidden, !visible)
	}

	return sheet, nil
}

// readCell converts one spreadsheet cell to the profiler's cell variant.
// Formula cells are detected via the stored formula, everything else is
// probed from the rendered value.
func readCell(f *excelize.File, sheet string, col, row int, value string) profile.Cell {
	axis, err := excelize.CoordinatesToCellName(col+1, row)
	if err == nil {
		if formula, err := f.GetCellFormula(sheet, axis); err == nil && formula != "" {
			return profile.FormulaCell(formula)
		}
	}
	return parseCell(value)
}

// columnFormat resolves the declared number format of a column from its
// first data cell. Unresolvable styles read as "no format".
func columnFormat(f *excelize.File, sheet string, col int) string {
	axis, err := excelize.CoordinatesToCellName(col+1, 2)
	if err != nil {
		return ""
	}
	styleID, err := f.GetCellStyle(sheet, axis)
	if err != nil {
		return ""
	}
	style, err := f.GetStyle(styleID)
	if err != nil || style == nil {
		return ""
	}
	if style.CustomNumFmt != nil {
		return *style.CustomNumFmt
	}
	return builtinFormats[style.NumFmt]
}

func loadCSV(fileName string, data []byte) (*Workbook, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty csv file")
	}

	sheet := &Sheet{Name: sheetNameFromFile(fileName)}
	sheet.Headers = make([]string, len(records[0]))
	for i, h := range records[0] {
		sheet.Headers[i] = headerName(h, i)
	}
	width := len(sheet.Headers)

	for _, rawRow := range records[1:] {
		row := make([]profile.Cell, 0, width)
		for c := 0; c < width && c < len(rawRow); c++ {
			row = append(row, parseCell(rawRow[c]))
		}
		sheet.Rows = append(sheet.Rows, padRow(row, width))
	}

	return &Workbook{
		FileName:   fileName,
		SourceSize: int64(len(data)),
		Sheets:     []*Sheet{sheet},
	}, nil
}

// parseCell probes a rendered value: number first, then date, then the
// boolean literals, and text as the fallback. Probe misses are not errors.
func parseCell(value string) profile.Cell {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return profile.EmptyCell()
	}

	if n, ok := profile.ParseNumber(trimmed); ok {
		return profile.NumberCell(n)
	}
	if d, ok := profile.ParseDate(trimmed); ok {
		return profile.DateCell(d)
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return profile.BoolCell(true)
	case "false":
		return profile.BoolCell(false)
	}
	return profile.TextCell(value)
}

func sheetNameFromFile(fileName string) string {
	base := filepath.Base(fileName)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	if name == "" {
		return "Sheet1"
	}
	return name
}
