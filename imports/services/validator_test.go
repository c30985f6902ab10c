package services

import (
	"testing"
)

func validStudentFields() map[string]string {
	return map[string]string{
		"admission_number": "ADM-001",
		"first_name":       "Tariro",
		"last_name":        "Moyo",
		"gender":           "female",
		"date_of_birth":    "2012-03-18",
		"class_level":      "form_1",
		"guardian_phone":   "+263771234567",
		"guardian_email":   "guardian@example.com",
		"fees_balance":     "150.00",
		"boarding":         "no",
	}
}

func TestValidateRowsAcceptsCleanRow(t *testing.T) {
	t.Parallel()

	spec := studentsSpec(t)
	validated, errs := ValidateRows(spec, []RawRow{{RowNumber: 1, Fields: validStudentFields()}})

	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %+v", errs)
	}
	if len(validated) != 1 {
		t.Fatalf("expected 1 validated row, got %d", len(validated))
	}

	fields := validated[0].NormalizedFields
	if fields["fees_balance"] != "150" {
		t.Errorf("expected canonical decimal 150, got %q", fields["fees_balance"])
	}
	if fields["boarding"] != "false" {
		t.Errorf("expected canonical bool false, got %q", fields["boarding"])
	}
	if fields["date_of_birth"] != "2012-03-18" {
		t.Errorf("expected canonical date 2012-03-18, got %q", fields["date_of_birth"])
	}
}

func TestValidateRowsAccumulatesAllErrorsPerRow(t *testing.T) {
	t.Parallel()

	spec := studentsSpec(t)
	fields := validStudentFields()
	fields["first_name"] = ""
	fields["gender"] = "unknown"
	fields["date_of_birth"] = "not-a-date"

	validated, errs := ValidateRows(spec, []RawRow{{RowNumber: 4, Fields: fields}})
	if len(validated) != 0 {
		t.Fatalf("row with errors must not validate, got %d rows", len(validated))
	}
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %+v", len(errs), errs)
	}

	// Errors within a row follow column declaration order.
	wantFields := []string{"first_name", "gender", "date_of_birth"}
	for i, want := range wantFields {
		if errs[i].Field != want {
			t.Errorf("error %d: expected field %s, got %s", i, want, errs[i].Field)
		}
		if errs[i].RowNumber != 4 {
			t.Errorf("error %d: expected row number 4, got %d", i, errs[i].RowNumber)
		}
	}
	if errs[0].Message != "First Name is required" {
		t.Errorf("unexpected required message: %q", errs[0].Message)
	}
	if errs[1].InvalidValue != "unknown" {
		t.Errorf("expected invalid value to be echoed, got %q", errs[1].InvalidValue)
	}
}

func TestValidateRowsAppliesDefaults(t *testing.T) {
	t.Parallel()

	spec := studentsSpec(t)
	fields := validStudentFields()
	delete(fields, "fees_balance")
	delete(fields, "boarding")
	delete(fields, "guardian_email")

	validated, errs := ValidateRows(spec, []RawRow{{RowNumber: 1, Fields: fields}})
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %+v", errs)
	}
	normalized := validated[0].NormalizedFields
	if normalized["fees_balance"] != "0" {
		t.Errorf("expected default fees_balance 0, got %q", normalized["fees_balance"])
	}
	if normalized["boarding"] != "false" {
		t.Errorf("expected default boarding false, got %q", normalized["boarding"])
	}
	if _, ok := normalized["guardian_email"]; ok {
		t.Error("optional blank column without default must stay absent")
	}
}

func TestValidateRowsPreservesRowOrder(t *testing.T) {
	t.Parallel()

	spec := studentsSpec(t)
	first := validStudentFields()
	second := validStudentFields()
	second["admission_number"] = "ADM-002"

	validated, errs := ValidateRows(spec, []RawRow{
		{RowNumber: 1, Fields: first},
		{RowNumber: 2, Fields: second},
	})
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %+v", errs)
	}
	if validated[0].RowNumber != 1 || validated[1].RowNumber != 2 {
		t.Errorf("row order not preserved: %d, %d", validated[0].RowNumber, validated[1].RowNumber)
	}
}

func TestNormalizeValueKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		col     FieldSpec
		raw     string
		want    string
		wantErr bool
	}{
		{name: "text passes through", col: FieldSpec{Label: "Name", Kind: TextField}, raw: "Tariro", want: "Tariro"},
		{name: "int canonicalized", col: FieldSpec{Label: "Count", Kind: IntField}, raw: "007", want: "7"},
		{name: "int rejects text", col: FieldSpec{Label: "Count", Kind: IntField}, raw: "seven", wantErr: true},
		{name: "decimal canonicalized", col: FieldSpec{Label: "Fees Balance", Kind: DecimalField}, raw: "150.00", want: "150"},
		{name: "decimal rejects text", col: FieldSpec{Label: "Fees Balance", Kind: DecimalField}, raw: "lots", wantErr: true},
		{name: "decimal rejects negative", col: FieldSpec{Label: "Fees Balance", Kind: DecimalField}, raw: "-5", wantErr: true},
		{name: "positive rejects zero", col: FieldSpec{Label: "Basic Salary", Kind: DecimalField, Positive: true}, raw: "0", wantErr: true},
		{name: "positive accepts amount", col: FieldSpec{Label: "Basic Salary", Kind: DecimalField, Positive: true}, raw: "850.50", want: "850.5"},
		{name: "date day first layout", col: FieldSpec{Label: "Date Of Birth", Kind: DateField}, raw: "18/03/2012", want: "2012-03-18"},
		{name: "date iso layout", col: FieldSpec{Label: "Date Of Birth", Kind: DateField}, raw: "2012-03-18", want: "2012-03-18"},
		{name: "date rejects junk", col: FieldSpec{Label: "Date Of Birth", Kind: DateField}, raw: "soon", wantErr: true},
		{name: "enum case insensitive", col: FieldSpec{Label: "Gender", Kind: EnumField, Enum: []string{"male", "female"}}, raw: "Female", want: "female"},
		{name: "enum rejects unknown", col: FieldSpec{Label: "Gender", Kind: EnumField, Enum: []string{"male", "female"}}, raw: "other", wantErr: true},
		{name: "bool yes", col: FieldSpec{Label: "Boarding", Kind: BoolField}, raw: "Yes", want: "true"},
		{name: "bool zero", col: FieldSpec{Label: "Boarding", Kind: BoolField}, raw: "0", want: "false"},
		{name: "bool rejects maybe", col: FieldSpec{Label: "Boarding", Kind: BoolField}, raw: "maybe", wantErr: true},
		{name: "email lowercased", col: FieldSpec{Label: "Email", Kind: EmailField}, raw: "R.Chikafu@School.Example", want: "r.chikafu@school.example"},
		{name: "email rejects malformed", col: FieldSpec{Label: "Email", Kind: EmailField}, raw: "not-an-email", wantErr: true},
		{name: "phone accepted", col: FieldSpec{Label: "Guardian Phone", Kind: PhoneField}, raw: "+263 77 123 4567", want: "+263 77 123 4567"},
		{name: "phone rejects letters", col: FieldSpec{Label: "Guardian Phone", Kind: PhoneField}, raw: "call me", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, message := normalizeValue(tc.col, tc.raw)
			if tc.wantErr {
				if message == "" {
					t.Fatalf("expected a validation message, got value %q", got)
				}
				return
			}
			if message != "" {
				t.Fatalf("unexpected validation message: %q", message)
			}
			if got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestValidateRowsDeterministic(t *testing.T) {
	t.Parallel()

	spec := studentsSpec(t)
	rows := []RawRow{{RowNumber: 1, Fields: validStudentFields()}}

	first, _ := ValidateRows(spec, rows)
	second, _ := ValidateRows(spec, rows)

	for key, value := range first[0].NormalizedFields {
		if second[0].NormalizedFields[key] != value {
			t.Errorf("field %s changed between runs: %q vs %q", key, value, second[0].NormalizedFields[key])
		}
	}
}
