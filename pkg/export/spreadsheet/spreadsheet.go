package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"lockstats/pkg/table"
)

const Name = "xlsx"

// Spreadsheet writes an Excel workbook with a single sheet.
type Spreadsheet struct{}

func (*Spreadsheet) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (*Spreadsheet) Extension() string { return Name }

func (*Spreadsheet) Write(w io.Writer, page *table.Page) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("failed to open sheet %s: %w", sheet, err)
	}

	header := make([]interface{}, len(page.Headers))
	for i, h := range page.Headers {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, row := range page.Rows {
		values := make([]interface{}, len(row))
		for j, c := range row {
			values[j] = cellValue(c.Value)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}
	return f.Write(w)
}

// cellValue keeps numbers numeric so spreadsheet formulas work on exports.
func cellValue(v any) any {
	switch v := v.(type) {
	case nil, string, bool, int, int64, float64:
		return v
	default:
		return table.CellString(v)
	}
}
