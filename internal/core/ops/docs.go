package ops

import (
	"context"
	"fmt"

	"github.com/sheetops/sheetops/internal/core"
)

func init() {
	core.Register(core.OpDefinition{
		Info: core.OpInfo{
			Key:         "doc_markdown",
			Group:       "Docs",
			Label:       "Documentation (Markdown)",
			Description: "Profile every column and generate a Markdown documentation report",
		},
		Run: runDocMarkdown,
	})

	core.Register(core.OpDefinition{
		Info: core.OpInfo{
			Key:         "doc_json",
			Group:       "Docs",
			Label:       "Documentation (JSON)",
			Description: "Profile every column and generate a JSON documentation report",
		},
		Run: runDocJSON,
	})
}

func runDocMarkdown(ctx context.Context, req *core.RunRequest) (*core.Outcome, error) {
	return &core.Outcome{
		ArtifactName: artifactName(req.FileName, "_documentation", ".md"),
		ContentType:  "text/markdown",
		Artifact:     req.Reports.Markdown(req.Workbook),
		Summary:      docSummary(req),
	}, nil
}

func runDocJSON(ctx context.Context, req *core.RunRequest) (*core.Outcome, error) {
	data, err := req.Reports.JSON(req.Workbook)
	if err != nil {
		return nil, err
	}

	return &core.Outcome{
		ArtifactName: artifactName(req.FileName, "_documentation", ".json"),
		ContentType:  "application/json",
		Artifact:     data,
		Summary:      docSummary(req),
	}, nil
}

func docSummary(req *core.RunRequest) string {
	sheets := len(req.Workbook.Sheets)
	columns := 0
	for _, s := range req.Workbook.Sheets {
		columns += len(s.Headers)
	}
	return fmt.Sprintf("Documented %d column(s) across %d sheet(s)", columns, sheets)
}
