package services

// RawRow is one data row exactly as decoded from the uploaded file.
// RowNumber is the row's 1-based position among data rows (header excluded)
// so errors map back to what the operator sees in their editor.
type RawRow struct {
	RowNumber int               `json:"row_number"`
	Fields    map[string]string `json:"fields"`
}

// FieldError describes a single rejected cell. It never causes any
// mutation by itself.
type FieldError struct {
	RowNumber    int    `json:"row_number"`
	Field        string `json:"field"`
	Message      string `json:"message"`
	InvalidValue string `json:"invalid_value"`
}

// ValidatedRow is a row that passed every field rule. NormalizedFields
// holds canonical string forms (dates as 2006-01-02, decimals and booleans
// in their canonical rendering) so the row survives the JSON round trip
// between preview and execute unchanged.
type ValidatedRow struct {
	RowNumber        int               `json:"row_number"`
	NormalizedFields map[string]string `json:"normalized_fields"`
	IsDuplicate      bool              `json:"is_duplicate"`
}

// ImportSummary carries the preview counts shown to the operator.
// TotalRows is always ValidRows + InvalidRows.
type ImportSummary struct {
	TotalRows      int `json:"total_rows"`
	ValidRows      int `json:"valid_rows"`
	InvalidRows    int `json:"invalid_rows"`
	DuplicatesInDB int `json:"duplicates_in_db"`
}

// PreviewResult is the stateless artifact returned to the operator for
// review. Nothing is persisted server-side; the client echoes the rows it
// wants committed back to the execute endpoint.
type PreviewResult struct {
	Summary         ImportSummary  `json:"summary"`
	SampleValidRows []ValidatedRow `json:"sample_valid_rows"`
	Errors          []FieldError   `json:"errors"`
}

// ExecutionOptions controls commit behavior. SkipErrors is accepted and
// recorded but is a no-op today: invalid rows never reach commit. The flag
// is kept so a future lenient-commit mode does not change the contract.
type ExecutionOptions struct {
	SkipErrors     bool `json:"skip_errors"`
	SkipDuplicates bool `json:"skip_duplicates"`
}

// ExecutionSummary reports per-row commit outcomes. SuccessCount +
// SkippedCount + FailedCount always equals the number of submitted rows.
type ExecutionSummary struct {
	SuccessCount int          `json:"success_count"`
	SkippedCount int          `json:"skipped_count"`
	FailedCount  int          `json:"failed_count"`
	CreatedIDs   []string     `json:"created_ids"`
	Failures     []FieldError `json:"failures"`
}

// Preview sample size shown to the operator.
const maxSampleValidRows = 10
