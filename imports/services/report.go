package services

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Fixed error-report layout. Operator tooling re-imports this document
// into tracking sheets, so the column set and order never change.
var errorReportHeaders = []string{"row_number", "field", "message", "invalid_value"}

// BuildErrorReportCSV renders the full error list as a delimited-text
// report, one row per error, in the order supplied.
func BuildErrorReportCSV(errors []FieldError) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(errorReportHeaders); err != nil {
		return nil, err
	}
	for _, fieldError := range errors {
		record := []string{
			strconv.Itoa(fieldError.RowNumber),
			fieldError.Field,
			fieldError.Message,
			fieldError.InvalidValue,
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildErrorReportXLSX renders the same report as a spreadsheet, with the
// identical column layout.
func BuildErrorReportXLSX(errors []FieldError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := f.GetSheetName(0)
	for col, header := range errorReportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for i, fieldError := range errors {
		values := []interface{}{fieldError.RowNumber, fieldError.Field, fieldError.Message, fieldError.InvalidValue}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
