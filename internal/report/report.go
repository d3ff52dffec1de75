// Package report generates documentation and export artifacts from loaded
// workbooks. The documentation generators drive the column profiler one
// column at a time; a column that cannot be profiled is logged and skipped
// so a single bad column never aborts a report.
package report

import (
	"log/slog"
	"time"

	"github.com/sheetops/sheetops/internal/profile"
	"github.com/sheetops/sheetops/internal/workbook"
)

// Generator produces documentation reports for workbooks.
type Generator struct {
	profiler *profile.Profiler

	// MaxExportRows caps the number of data rows included in Markdown
	// sheet exports. Zero means no cap.
	MaxExportRows int
}

// NewGenerator returns a Generator backed by the given profiler.
func NewGenerator(p *profile.Profiler) *Generator {
	if p == nil {
		p = profile.New()
	}
	return &Generator{profiler: p}
}

// ColumnDoc is one profiled column in a documentation report.
type ColumnDoc struct {
	Position int      `json:"position"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Samples  []string `json:"samples"`
	Quality  string   `json:"quality"`
	Advice   string   `json:"advice"`
}

// SheetDoc documents one sheet.
type SheetDoc struct {
	Name     string      `json:"name"`
	RowCount int         `json:"rowCount"`
	Columns  []ColumnDoc `json:"columns"`

	// SkippedColumns counts columns that could not be profiled.
	SkippedColumns int `json:"skippedColumns,omitempty"`
}

// WorkbookDoc is the complete documentation of a workbook.
type WorkbookDoc struct {
	FileName    string     `json:"fileName"`
	SourceSize  string     `json:"sourceSize"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Sheets      []SheetDoc `json:"sheets"`
}

// Document profiles every column of every sheet. Column failures are
// tolerated: the offending column is logged with its identity and skipped,
// and generation continues with the next one.
func (g *Generator) Document(wb *workbook.Workbook) WorkbookDoc {
	doc := WorkbookDoc{
		FileName:    wb.FileName,
		SourceSize:  humanSize(wb.SourceSize),
		GeneratedAt: time.Now().UTC(),
	}

	for _, sheet := range wb.Sheets {
		sd := SheetDoc{
			Name:     sheet.Name,
			RowCount: len(sheet.Rows),
		}

		for i := range sheet.Headers {
			col, err := sheet.Column(i)
			if err == nil {
				var p profile.ColumnProfile
				p, err = g.profiler.Profile(col)
				if err == nil {
					sd.Columns = append(sd.Columns, ColumnDoc{
						Position: i + 1,
						Name:     p.Name,
						Type:     p.Type.Label(),
						Samples:  p.Samples,
						Quality:  p.Quality.String(),
						Advice:   p.Advice,
					})
					continue
				}
			}

			sd.SkippedColumns++
			slog.Warn("skipping unprofilable column",
				"sheet", sheet.Name,
				"column", i+1,
				"error", err,
			)
		}

		doc.Sheets = append(doc.Sheets, sd)
	}

	return doc
}
