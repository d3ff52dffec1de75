// Package ops registers the built-in workbook operations. Importing the
// package for side effects populates the core registry:
//
//	import _ "github.com/sheetops/sheetops/internal/core/ops"
package ops

import (
	"context"
	"fmt"

	"github.com/sheetops/sheetops/internal/core"
	"github.com/sheetops/sheetops/internal/workbook"
)

func init() {
	core.Register(core.OpDefinition{
		Info: core.OpInfo{
			Key:         "clean_cells",
			Group:       "Cleanup",
			Label:       "Clean Cells",
			Description: "Trim whitespace, collapse space runs, and blank out null markers",
		},
		Run: runCleanCells,
	})

	core.Register(core.OpDefinition{
		Info: core.OpInfo{
			Key:         "fill_blanks",
			Group:       "Cleanup",
			Label:       "Fill Blank Cells",
			Description: "Fill empty cells with the nearest value above in the same column",
		},
		Run: runFillBlanks,
	})

	core.Register(core.OpDefinition{
		Info: core.OpInfo{
			Key:         "prune_hidden",
			Group:       "Cleanup",
			Label:       "Delete Hidden Rows",
			Description: "Remove rows hidden in the source workbook",
		},
		Run: runPruneHidden,
	})
}

func runCleanCells(ctx context.Context, req *core.RunRequest) (*core.Outcome, error) {
	changed := 0
	for _, sheet := range req.Workbook.Sheets {
		changed += workbook.CleanCells(sheet, workbook.DefaultCleanOptions())
	}

	artifact, name, contentType, err := saveWorkbook(req, "_cleaned")
	if err != nil {
		return nil, err
	}

	return &core.Outcome{
		ArtifactName: name,
		ContentType:  contentType,
		Artifact:     artifact,
		CellsChanged: changed,
		Summary:      fmt.Sprintf("Cleaned %d cell(s)", changed),
	}, nil
}

func runFillBlanks(ctx context.Context, req *core.RunRequest) (*core.Outcome, error) {
	filled := 0
	for _, sheet := range req.Workbook.Sheets {
		filled += workbook.FillBlanks(sheet)
	}

	artifact, name, contentType, err := saveWorkbook(req, "_filled")
	if err != nil {
		return nil, err
	}

	return &core.Outcome{
		ArtifactName: name,
		ContentType:  contentType,
		Artifact:     artifact,
		CellsChanged: filled,
		Summary:      fmt.Sprintf("Filled %d blank cell(s)", filled),
	}, nil
}

func runPruneHidden(ctx context.Context, req *core.RunRequest) (*core.Outcome, error) {
	// CSV files carry no row visibility; the operation is a clean no-op.
	if isCSV(req.FileName) {
		return &core.Outcome{
			ArtifactName: artifactName(req.FileName, "_pruned", ".csv"),
			ContentType:  "text/csv",
			Artifact:     req.Raw,
			Summary:      "No hidden rows in CSV input",
		}, nil
	}

	// Edit the original bytes so formatting and formulas survive.
	out, removed, err := workbook.PruneHiddenXLSX(req.Raw)
	if err != nil {
		return nil, fmt.Errorf("prune hidden rows: %w", err)
	}

	return &core.Outcome{
		ArtifactName: artifactName(req.FileName, "_pruned", ".xlsx"),
		ContentType:  xlsxContentType,
		Artifact:     out,
		RowsRemoved:  removed,
		Summary:      fmt.Sprintf("Removed %d hidden row(s)", removed),
	}, nil
}
