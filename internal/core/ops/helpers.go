package ops

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sheetops/sheetops/internal/core"
	"github.com/sheetops/sheetops/internal/workbook"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// saveWorkbook serializes a modified workbook model back to the input's
// format: CSV inputs produce CSV (first sheet), everything else xlsx.
func saveWorkbook(req *core.RunRequest, suffix string) (artifact []byte, name, contentType string, err error) {
	if isCSV(req.FileName) {
		sheet, err := req.Workbook.First()
		if err != nil {
			return nil, "", "", err
		}
		var buf strings.Builder
		if err := workbook.WriteCSV(sheet, &buf); err != nil {
			return nil, "", "", fmt.Errorf("save csv: %w", err)
		}
		return []byte(buf.String()), artifactName(req.FileName, suffix, ".csv"), "text/csv", nil
	}

	data, err := workbook.SaveXLSX(req.Workbook)
	if err != nil {
		return nil, "", "", fmt.Errorf("save xlsx: %w", err)
	}
	return data, artifactName(req.FileName, suffix, ".xlsx"), xlsxContentType, nil
}

func isCSV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".csv")
}

func artifactName(inputName, suffix, ext string) string {
	base := strings.TrimSuffix(filepath.Base(inputName), filepath.Ext(inputName))
	if base == "" {
		base = "workbook"
	}
	return base + suffix + ext
}
