package ops

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sheetops/sheetops/internal/core"
	"github.com/sheetops/sheetops/internal/workbook"
)

func init() {
	core.Register(core.OpDefinition{
		Info: core.OpInfo{
			Key:         "export_csv",
			Group:       "Export",
			Label:       "Export CSV",
			Description: "Write the first sheet as a CSV file",
		},
		Run: runExportCSV,
	})

	core.Register(core.OpDefinition{
		Info: core.OpInfo{
			Key:         "export_markdown",
			Group:       "Export",
			Label:       "Export Markdown",
			Description: "Write the first sheet as a Markdown table",
		},
		Run: runExportMarkdown,
	})
}

func runExportCSV(ctx context.Context, req *core.RunRequest) (*core.Outcome, error) {
	sheet, err := req.Workbook.First()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := workbook.WriteCSV(sheet, &buf); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}

	return &core.Outcome{
		ArtifactName: artifactName(req.FileName, "", ".csv"),
		ContentType:  "text/csv",
		Artifact:     buf.Bytes(),
		Summary:      fmt.Sprintf("Exported %d row(s) from sheet %s", len(sheet.Rows), sheet.Name),
	}, nil
}

func runExportMarkdown(ctx context.Context, req *core.RunRequest) (*core.Outcome, error) {
	sheet, err := req.Workbook.First()
	if err != nil {
		return nil, err
	}

	return &core.Outcome{
		ArtifactName: artifactName(req.FileName, "", ".md"),
		ContentType:  "text/markdown",
		Artifact:     req.Reports.SheetMarkdown(sheet),
		Summary:      fmt.Sprintf("Exported sheet %s as Markdown", sheet.Name),
	}, nil
}
