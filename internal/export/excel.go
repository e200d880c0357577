// Package export writes a normalized measurement table as a spreadsheet.
package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/quality"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single sheet of an exported workbook.
const SheetName = "measurements"

// ContentType is the MIME type of the XLSX workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX renders the table as a workbook: a bold header row with the
// column names, then one row per record.
func WriteXLSX(t *quality.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	columns := t.Columns()
	for i, c := range columns {
		if err := f.SetCellValue(SheetName, cell(i+1, 1), c.Name); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row := 0; row < t.Len(); row++ {
		for i, c := range columns {
			v := c.Values[row]
			if v == nil {
				continue
			}
			value, err := cellValue(v)
			if err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", c.Name, row, err)
			}
			if err := f.SetCellValue(SheetName, cell(i+1, row+2), value); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	if len(columns) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, fmt.Errorf("failed to create header style: %w", err)
		}
		if err := f.SetCellStyle(SheetName, cell(1, 1), cell(len(columns), 1), bold); err != nil {
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
		last, _ := excelize.ColumnNumberToName(len(columns))
		_ = f.SetColWidth(SheetName, "A", last, 18)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func cellValue(v any) (any, error) {
	switch x := v.(type) {
	case float64, string, bool:
		return x, nil
	case time.Time:
		return x.Format(time.RFC3339), nil
	default:
		text, err := json.Marshal(x)
		if err != nil {
			return nil, err
		}
		return string(text), nil
	}
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
