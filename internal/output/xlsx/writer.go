// Package xlsx writes row blocks to Excel workbooks. It mirrors the CSV
// writer cell for cell so a table saved to both formats reads the same.
package xlsx

import (
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"dataprep/internal/table"
)

// Write saves b as a single-sheet workbook at path. Rows go through the
// stream writer, so the workbook is built without holding every cell in
// memory twice. Floats become numeric cells; nil cells stay empty.
func Write(path, sheet string, b *table.Block) error {
	if sheet == "" {
		sheet = "Sheet1"
	}

	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	header := make([]any, len(b.Columns))
	for i, c := range b.Columns {
		header[i] = c
	}
	if err := writeRow(sw, 1, header); err != nil {
		return err
	}
	for i, row := range b.Rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = cellValue(v)
		}
		if err := writeRow(sw, i+2, cells); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// writeRow sets spreadsheet row n (1-based) starting at column A.
func writeRow(sw *excelize.StreamWriter, n int, cells []any) error {
	ref, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		return fmt.Errorf("row %d: %w", n, err)
	}
	if err := sw.SetRow(ref, cells); err != nil {
		return fmt.Errorf("write row %d: %w", n, err)
	}
	return nil
}

// cellValue converts a block cell into a value excelize stores natively.
// Uncoerced numbers become numeric cells when they parse, matching how a
// spreadsheet user expects to sum a column.
func cellValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
	return v
}
