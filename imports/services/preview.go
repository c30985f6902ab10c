package services

// AssemblePreview combines validator and duplicate-resolver output into
// the artifact returned to the operator. It performs no persistence and
// is deterministic for a given input.
func AssemblePreview(totalRows int, validRows []ValidatedRow, errors []FieldError) PreviewResult {
	duplicates := 0
	for _, row := range validRows {
		if row.IsDuplicate {
			duplicates++
		}
	}

	sample := validRows
	if len(sample) > maxSampleValidRows {
		sample = sample[:maxSampleValidRows]
	}

	if errors == nil {
		errors = []FieldError{}
	}
	if sample == nil {
		sample = []ValidatedRow{}
	}

	return PreviewResult{
		Summary: ImportSummary{
			TotalRows:      totalRows,
			ValidRows:      len(validRows),
			InvalidRows:    totalRows - len(validRows),
			DuplicatesInDB: duplicates,
		},
		SampleValidRows: sample,
		Errors:          errors,
	}
}
