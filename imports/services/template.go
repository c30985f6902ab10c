package services

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// BuildTemplateCSV renders the column headers and one example row for an
// entity type so operators can produce conforming files.
func BuildTemplateCSV(spec ImportSpec) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := make([]string, 0, len(spec.Columns))
	example := make([]string, 0, len(spec.Columns))
	for _, col := range spec.Columns {
		headers = append(headers, col.Label)
		example = append(example, col.Example)
	}

	if err := writer.Write(headers); err != nil {
		return nil, err
	}
	if err := writer.Write(example); err != nil {
		return nil, err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// BuildTemplateXLSX renders the same template as a spreadsheet.
func BuildTemplateXLSX(spec ImportSpec) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)
	for col, field := range spec.Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, fmt.Errorf("error naming header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, field.Label); err != nil {
			return nil, fmt.Errorf("error setting header %s: %w", field.Label, err)
		}

		cell, err = excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return nil, fmt.Errorf("error naming example cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, field.Example); err != nil {
			return nil, fmt.Errorf("error setting example for %s: %w", field.Label, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
