package workbook

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ScopedView captures workbook view settings before a bulk edit and restores
// them afterwards regardless of how the edit exits. Bulk operations disable
// gridlines-affecting options while they run; the scope guarantees the file
// leaves looking the way it arrived.
type ScopedView struct {
	file  *excelize.File
	saved map[string]excelize.ViewOptions
}

// CaptureView records the current first-view options of every sheet.
func CaptureView(f *excelize.File) *ScopedView {
	sv := &ScopedView{
		file:  f,
		saved: make(map[string]excelize.ViewOptions),
	}
	for _, sheet := range f.GetSheetList() {
		opts, err := f.GetSheetView(sheet, 0)
		if err != nil {
			continue
		}
		sv.saved[sheet] = opts
	}
	return sv
}

// Restore reapplies the captured view options. Safe to call from a defer;
// sheets that disappeared during the edit are skipped.
func (sv *ScopedView) Restore() {
	for sheet, opts := range sv.saved {
		if idx, err := sv.file.GetSheetIndex(sheet); err != nil || idx < 0 {
			continue
		}
		o := opts
		sv.file.SetSheetView(sheet, 0, &o)
	}
}

// EditXLSX opens raw workbook bytes, runs edit inside a view scope, and
// returns the re-serialized workbook. The view settings are restored on
// every exit path, including an edit error.
func EditXLSX(raw []byte, edit func(f *excelize.File) error) ([]byte, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sv := CaptureView(f)
	defer sv.Restore()

	if err := edit(f); err != nil {
		return nil, err
	}

	sv.Restore()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
