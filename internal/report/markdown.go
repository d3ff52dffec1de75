package report

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/sheetops/sheetops/internal/profile"
	"github.com/sheetops/sheetops/internal/workbook"
)

// docHeader is the column layout of generated documentation tables.
var docHeader = []string{"#", "Column Name", "Data Type", "Sample Values", "Quality", "AI Notes"}

// Markdown renders the documentation report as a Markdown document, one
// table per sheet.
func (g *Generator) Markdown(wb *workbook.Workbook) []byte {
	doc := g.Document(wb)

	var b strings.Builder
	fmt.Fprintf(&b, "# Spreadsheet Documentation: %s\n\n", escapeMarkdown(doc.FileName))
	fmt.Fprintf(&b, "Source size: %s. Generated at %s.\n\n",
		doc.SourceSize, doc.GeneratedAt.Format("2006-01-02 15:04 MST"))

	for _, sheet := range doc.Sheets {
		fmt.Fprintf(&b, "## Sheet: %s\n\n", escapeMarkdown(sheet.Name))
		fmt.Fprintf(&b, "%s data rows, %s columns.\n\n",
			humanize.Comma(int64(sheet.RowCount)), humanize.Comma(int64(len(sheet.Columns))))

		if len(sheet.Columns) == 0 {
			b.WriteString("_No columns to document._\n\n")
			continue
		}

		writeTableRow(&b, docHeader)
		writeTableRule(&b, len(docHeader))
		for _, col := range sheet.Columns {
			writeTableRow(&b, []string{
				fmt.Sprintf("%d", col.Position),
				col.Name,
				col.Type,
				strings.Join(col.Samples, ", "),
				col.Quality,
				col.Advice,
			})
		}
		b.WriteString("\n")

		if sheet.SkippedColumns > 0 {
			fmt.Fprintf(&b, "_%d column(s) could not be profiled and were skipped._\n\n", sheet.SkippedColumns)
		}
	}

	return []byte(b.String())
}

// SheetMarkdown renders a sheet's data as a plain Markdown table, capped at
// MaxExportRows data rows when a cap is configured.
func (g *Generator) SheetMarkdown(sheet *workbook.Sheet) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", escapeMarkdown(sheet.Name))

	if len(sheet.Headers) == 0 {
		b.WriteString("_Empty sheet._\n")
		return []byte(b.String())
	}

	writeTableRow(&b, sheet.Headers)
	writeTableRule(&b, len(sheet.Headers))

	written := 0
	for _, row := range sheet.Rows {
		if g.MaxExportRows > 0 && written >= g.MaxExportRows {
			break
		}
		cells := make([]string, len(sheet.Headers))
		for c := range cells {
			if c < len(row) {
				cells[c] = profile.CellString(row[c])
			}
		}
		writeTableRow(&b, cells)
		written++
	}

	if rest := len(sheet.Rows) - written; rest > 0 {
		fmt.Fprintf(&b, "\n_%s more row(s) not shown._\n", humanize.Comma(int64(rest)))
	}

	return []byte(b.String())
}

func writeTableRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(escapeMarkdown(c))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func writeTableRule(b *strings.Builder, width int) {
	b.WriteString("|")
	for i := 0; i < width; i++ {
		b.WriteString("---|")
	}
	b.WriteString("\n")
}

// escapeMarkdown neutralizes literal pipes so cell text cannot break the
// table structure. Everything else passes through as plain text.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func humanSize(n int64) string {
	if n <= 0 {
		return "unknown"
	}
	return humanize.Bytes(uint64(n))
}
