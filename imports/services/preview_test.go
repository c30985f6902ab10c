package services

import (
	"fmt"
	"reflect"
	"testing"
)

func TestAssemblePreviewSummaryInvariant(t *testing.T) {
	t.Parallel()

	valid := []ValidatedRow{rowWithKey(1, "ADM-001"), rowWithKey(3, "ADM-003")}
	valid[1].IsDuplicate = true
	errs := []FieldError{{RowNumber: 2, Field: "first_name", Message: "First Name is required"}}

	result := AssemblePreview(3, valid, errs)

	if result.Summary.TotalRows != result.Summary.ValidRows+result.Summary.InvalidRows {
		t.Errorf("summary invariant broken: %+v", result.Summary)
	}
	if result.Summary.ValidRows != 2 || result.Summary.InvalidRows != 1 {
		t.Errorf("unexpected counts: %+v", result.Summary)
	}
	if result.Summary.DuplicatesInDB != 1 {
		t.Errorf("expected 1 duplicate, got %d", result.Summary.DuplicatesInDB)
	}
}

func TestAssemblePreviewSampleCap(t *testing.T) {
	t.Parallel()

	var valid []ValidatedRow
	for i := 1; i <= 25; i++ {
		valid = append(valid, rowWithKey(i, fmt.Sprintf("ADM-%03d", i)))
	}

	result := AssemblePreview(25, valid, nil)

	if len(result.SampleValidRows) != maxSampleValidRows {
		t.Errorf("expected sample capped at %d, got %d", maxSampleValidRows, len(result.SampleValidRows))
	}
	if result.SampleValidRows[0].RowNumber != 1 {
		t.Error("sample must start at the first valid row")
	}
	if result.Summary.ValidRows != 25 {
		t.Errorf("summary must count all valid rows, got %d", result.Summary.ValidRows)
	}
}

func TestAssemblePreviewEmptyInputs(t *testing.T) {
	t.Parallel()

	result := AssemblePreview(0, nil, nil)

	if result.SampleValidRows == nil || result.Errors == nil {
		t.Error("preview slices must be non-nil for JSON encoding")
	}
	if result.Summary.TotalRows != 0 {
		t.Errorf("unexpected summary: %+v", result.Summary)
	}
}

func TestAssemblePreviewDeterministic(t *testing.T) {
	t.Parallel()

	valid := []ValidatedRow{rowWithKey(1, "ADM-001")}
	errs := []FieldError{{RowNumber: 2, Field: "gender", Message: "Invalid Gender, must be one of male, female", InvalidValue: "x"}}

	first := AssemblePreview(2, valid, errs)
	second := AssemblePreview(2, valid, errs)

	if !reflect.DeepEqual(first, second) {
		t.Error("preview must be deterministic for identical input")
	}
}
