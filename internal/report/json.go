package report

import (
	"encoding/json"
	"fmt"

	"github.com/sheetops/sheetops/internal/workbook"
)

// JSON renders the documentation report as indented JSON.
func (g *Generator) JSON(wb *workbook.Workbook) ([]byte, error) {
	doc := g.Document(wb)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return append(data, '\n'), nil
}
