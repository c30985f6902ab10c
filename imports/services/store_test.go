package services

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestStudentFromRow(t *testing.T) {
	t.Parallel()

	row := ValidatedRow{
		RowNumber: 1,
		NormalizedFields: map[string]string{
			"admission_number": "ADM-001",
			"first_name":       "Tariro",
			"last_name":        "Moyo",
			"gender":           "female",
			"date_of_birth":    "2012-03-18",
			"class_level":      "form_1",
			"guardian_phone":   "+263771234567",
			"guardian_email":   "guardian@example.com",
			"fees_balance":     "150",
			"boarding":         "true",
		},
	}

	student, err := studentFromRow(row, "admin@school.example")
	if err != nil {
		t.Fatalf("studentFromRow returned error: %v", err)
	}

	if student.AdmissionNumber != "ADM-001" {
		t.Errorf("unexpected admission number %q", student.AdmissionNumber)
	}
	if student.DateOfBirth.Format("2006-01-02") != "2012-03-18" {
		t.Errorf("unexpected date of birth %v", student.DateOfBirth)
	}
	if student.FeesBalance.String() != "150" {
		t.Errorf("unexpected fees balance %s", student.FeesBalance)
	}
	if student.Boarding == nil || !*student.Boarding {
		t.Error("expected boarding true")
	}
	if student.GuardianEmail == nil || *student.GuardianEmail != "guardian@example.com" {
		t.Error("expected guardian email set")
	}
	if string(student.AddedVia) != "bulk" {
		t.Errorf("bulk-created records must carry the bulk source, got %q", student.AddedVia)
	}
	if student.CreatedBy != "admin@school.example" {
		t.Errorf("unexpected created_by %q", student.CreatedBy)
	}
}

func TestStudentFromRowDefaults(t *testing.T) {
	t.Parallel()

	row := ValidatedRow{
		RowNumber: 1,
		NormalizedFields: map[string]string{
			"admission_number": "ADM-001",
			"first_name":       "Tariro",
			"last_name":        "Moyo",
			"gender":           "female",
			"date_of_birth":    "2012-03-18",
			"class_level":      "form_1",
			"guardian_phone":   "+263771234567",
		},
	}

	student, err := studentFromRow(row, "admin@school.example")
	if err != nil {
		t.Fatalf("studentFromRow returned error: %v", err)
	}
	if !student.FeesBalance.IsZero() {
		t.Errorf("missing fees balance must default to zero, got %s", student.FeesBalance)
	}
	if student.GuardianEmail != nil {
		t.Error("missing guardian email must stay nil")
	}
}

func TestStaffFromRow(t *testing.T) {
	t.Parallel()

	row := ValidatedRow{
		RowNumber: 2,
		NormalizedFields: map[string]string{
			"employee_number": "EMP-0042",
			"first_name":      "Rudo",
			"last_name":       "Chikafu",
			"role":            "teacher",
			"department":      "Sciences",
			"basic_salary":    "850.5",
			"currency":        "USD",
			"start_date":      "2024-01-08",
			"email":           "r.chikafu@school.example",
		},
	}

	staff, err := staffFromRow(row, "admin@school.example")
	if err != nil {
		t.Fatalf("staffFromRow returned error: %v", err)
	}
	if staff.EmployeeNumber != "EMP-0042" || string(staff.Role) != "teacher" {
		t.Errorf("unexpected staff member: %+v", staff)
	}
	if staff.BasicSalary.String() != "850.5" {
		t.Errorf("unexpected salary %s", staff.BasicSalary)
	}
	if staff.StartDate.Format("2006-01-02") != "2024-01-08" {
		t.Errorf("unexpected start date %v", staff.StartDate)
	}
}

func TestMapStoreError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		err           error
		wantDuplicate bool
	}{
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, wantDuplicate: true},
		{
			name:          "postgres unique violation",
			err:           fmt.Errorf(`ERROR: duplicate key value violates unique constraint "students_admission_number_key" (SQLSTATE 23505)`),
			wantDuplicate: true,
		},
		{name: "other error", err: errors.New("connection refused"), wantDuplicate: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			mapped := mapStoreError(tc.err, "ADM-001")
			var dup *DuplicateKeyError
			if got := errors.As(mapped, &dup); got != tc.wantDuplicate {
				t.Errorf("expected duplicate=%v, got %v (%v)", tc.wantDuplicate, got, mapped)
			}
			if tc.wantDuplicate && dup.Key != "ADM-001" {
				t.Errorf("expected key ADM-001, got %q", dup.Key)
			}
		})
	}
}
