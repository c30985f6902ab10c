package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestBuildTemplateCSV(t *testing.T) {
	t.Parallel()

	spec := studentsSpec(t)
	data, err := BuildTemplateCSV(spec)
	if err != nil {
		t.Fatalf("BuildTemplateCSV returned error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("template is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus example row, got %d records", len(records))
	}
	for i, col := range spec.Columns {
		if records[0][i] != col.Label {
			t.Errorf("header %d: expected %q, got %q", i, col.Label, records[0][i])
		}
		if records[1][i] != col.Example {
			t.Errorf("example %d: expected %q, got %q", i, col.Example, records[1][i])
		}
	}
}

func TestTemplateRoundTripsThroughDecoder(t *testing.T) {
	t.Parallel()

	spec := studentsSpec(t)
	data, err := BuildTemplateCSV(spec)
	if err != nil {
		t.Fatalf("BuildTemplateCSV returned error: %v", err)
	}

	rows, err := DecodeRows(data, CSVMediaType, spec)
	if err != nil {
		t.Fatalf("template must decode under its own spec: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected the example row, got %d rows", len(rows))
	}

	validated, errs := ValidateRows(spec, rows)
	if len(errs) != 0 {
		t.Fatalf("example row must validate cleanly, got %+v", errs)
	}
	if len(validated) != 1 {
		t.Fatalf("expected 1 validated row, got %d", len(validated))
	}
}

func TestBuildTemplateXLSX(t *testing.T) {
	t.Parallel()

	spec := studentsSpec(t)
	data, err := BuildTemplateXLSX(spec)
	if err != nil {
		t.Fatalf("BuildTemplateXLSX returned error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("template is not a valid workbook: %v", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	for i, col := range spec.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			t.Fatalf("naming cell: %v", err)
		}
		value, err := f.GetCellValue(sheetName, cell)
		if err != nil {
			t.Fatalf("reading cell: %v", err)
		}
		if value != col.Label {
			t.Errorf("header %d: expected %q, got %q", i, col.Label, value)
		}
	}
}

func TestBuildErrorReportCSV(t *testing.T) {
	t.Parallel()

	errs := []FieldError{
		{RowNumber: 2, Field: "gender", Message: "Invalid Gender, must be one of male, female", InvalidValue: "x"},
		{RowNumber: 5, Field: "first_name", Message: "First Name is required"},
	}

	data, err := BuildErrorReportCSV(errs)
	if err != nil {
		t.Fatalf("BuildErrorReportCSV returned error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("report is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 error rows, got %d", len(records))
	}

	wantHeader := []string{"row_number", "field", "message", "invalid_value"}
	for i, header := range wantHeader {
		if records[0][i] != header {
			t.Errorf("header %d: expected %q, got %q", i, header, records[0][i])
		}
	}
	if records[1][0] != "2" || records[1][1] != "gender" || records[1][3] != "x" {
		t.Errorf("unexpected first error row: %v", records[1])
	}
	if records[2][0] != "5" || records[2][3] != "" {
		t.Errorf("unexpected second error row: %v", records[2])
	}
}

func TestBuildErrorReportXLSX(t *testing.T) {
	t.Parallel()

	errs := []FieldError{
		{RowNumber: 3, Field: "basic_salary", Message: "Invalid or non-positive Basic Salary", InvalidValue: "-10"},
	}

	data, err := BuildErrorReportXLSX(errs)
	if err != nil {
		t.Fatalf("BuildErrorReportXLSX returned error: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("report is not a valid workbook: %v", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("reading rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus 1 error row, got %d", len(rows))
	}
	if rows[1][0] != "3" || rows[1][1] != "basic_salary" || rows[1][3] != "-10" {
		t.Errorf("unexpected error row: %v", rows[1])
	}
}

func TestBuildErrorReportCSVEmptyList(t *testing.T) {
	t.Parallel()

	data, err := BuildErrorReportCSV(nil)
	if err != nil {
		t.Fatalf("BuildErrorReportCSV returned error: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("report is not valid CSV: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("empty report must still carry the header, got %d records", len(records))
	}
}
