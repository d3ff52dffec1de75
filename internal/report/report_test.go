package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/sheetops/sheetops/internal/profile"
	"github.com/sheetops/sheetops/internal/workbook"
)

func testWorkbook() *workbook.Workbook {
	return &workbook.Workbook{
		FileName:   "people.csv",
		SourceSize: 2048,
		Sheets: []*workbook.Sheet{
			{
				Name:    "people",
				Headers: []string{"Employee_ID", "Salary", "Notes"},
				Rows: [][]profile.Cell{
					{profile.TextCell("E001"), profile.NumberCell(50000), profile.EmptyCell()},
					{profile.TextCell("E002"), profile.NumberCell(62000), profile.EmptyCell()},
				},
			},
		},
	}
}

// ----------------------------------------------------------------------------
// Document Tests
// ----------------------------------------------------------------------------

func TestDocument(t *testing.T) {
	doc := NewGenerator(nil).Document(testWorkbook())

	if len(doc.Sheets) != 1 {
		t.Fatalf("got %d sheets, want 1", len(doc.Sheets))
	}
	sheet := doc.Sheets[0]
	if sheet.RowCount != 2 {
		t.Errorf("row count = %d, want 2", sheet.RowCount)
	}
	if len(sheet.Columns) != 3 {
		t.Fatalf("got %d columns, want 3", len(sheet.Columns))
	}

	id := sheet.Columns[0]
	if id.Name != "Employee_ID" {
		t.Errorf("column name = %q", id.Name)
	}
	if id.Advice != "Use for lookups/joins" {
		t.Errorf("advice = %q", id.Advice)
	}

	salary := sheet.Columns[1]
	if salary.Type != "Number" {
		t.Errorf("salary type = %q, want Number", salary.Type)
	}
	if salary.Quality != "Clean" {
		t.Errorf("salary quality = %q, want Clean", salary.Quality)
	}

	notes := sheet.Columns[2]
	if notes.Type != "Empty" {
		t.Errorf("notes type = %q, want Empty", notes.Type)
	}
	if notes.Quality != "Error (100% empty)" {
		t.Errorf("notes quality = %q", notes.Quality)
	}
	if len(notes.Samples) != 1 || notes.Samples[0] != "(empty/null)" {
		t.Errorf("notes samples = %v", notes.Samples)
	}
}

// ----------------------------------------------------------------------------
// Markdown Tests
// ----------------------------------------------------------------------------

func TestMarkdown(t *testing.T) {
	out := string(NewGenerator(nil).Markdown(testWorkbook()))

	if !strings.Contains(out, "# Spreadsheet Documentation: people.csv") {
		t.Error("missing document title")
	}
	if !strings.Contains(out, "| # | Column Name | Data Type | Sample Values | Quality | AI Notes |") {
		t.Error("missing documentation table header")
	}
	if !strings.Contains(out, "| 1 | Employee_ID | Text | E001, E002 | Clean | Use for lookups/joins |") {
		t.Errorf("missing profiled row, got:\n%s", out)
	}
	if !strings.Contains(out, "2.0 kB") {
		t.Error("missing humanized source size")
	}
}

func TestMarkdownEscapesPipes(t *testing.T) {
	wb := &workbook.Workbook{
		FileName: "t.csv",
		Sheets: []*workbook.Sheet{
			{
				Headers: []string{"a|b"},
				Name:    "s",
				Rows: [][]profile.Cell{
					{profile.TextCell("x|y")},
				},
			},
		},
	}

	out := string(NewGenerator(nil).Markdown(wb))
	if !strings.Contains(out, `a\|b`) {
		t.Errorf("header pipe not escaped:\n%s", out)
	}
	if !strings.Contains(out, `x\|y`) {
		t.Errorf("sample pipe not escaped:\n%s", out)
	}
}

func TestSheetMarkdownRowCap(t *testing.T) {
	wb := testWorkbook()
	g := NewGenerator(nil)
	g.MaxExportRows = 1

	out := string(g.SheetMarkdown(wb.Sheets[0]))
	if !strings.Contains(out, "E001") {
		t.Error("first row missing")
	}
	if strings.Contains(out, "E002") {
		t.Error("second row should be capped")
	}
	if !strings.Contains(out, "1 more row(s) not shown") {
		t.Errorf("missing cap footer:\n%s", out)
	}
}

// ----------------------------------------------------------------------------
// JSON Tests
// ----------------------------------------------------------------------------

func TestJSON(t *testing.T) {
	data, err := NewGenerator(nil).JSON(testWorkbook())
	if err != nil {
		t.Fatalf("JSON() error = %v", err)
	}

	var doc WorkbookDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.FileName != "people.csv" {
		t.Errorf("file name = %q", doc.FileName)
	}
	if doc.GeneratedAt.IsZero() {
		t.Error("generatedAt not set")
	}
	if len(doc.Sheets) != 1 || len(doc.Sheets[0].Columns) != 3 {
		t.Errorf("unexpected document shape: %+v", doc)
	}
}
