package services

import (
	"testing"
	"time"

	"school-records-backend/db/models"

	"github.com/shopspring/decimal"
)

func validStaffMember() models.StaffMember {
	return models.StaffMember{
		EmployeeNumber: "EMP-0042",
		FirstName:      "Rudo",
		LastName:       "Chikafu",
		Role:           models.TeacherStaffRole,
		Department:     "Sciences",
		BasicSalary:    decimal.NewFromInt(850),
		Currency:       models.USDSalaryCurrency,
		StartDate:      time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		Email:          "r.chikafu@school.example",
	}
}

func TestValidateStaffMember(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*models.StaffMember)
		wantMsg string
	}{
		{name: "valid staff member", mutate: func(s *models.StaffMember) {}, wantMsg: ""},
		{
			name:    "missing employee number",
			mutate:  func(s *models.StaffMember) { s.EmployeeNumber = "" },
			wantMsg: "EmployeeNumber is required",
		},
		{
			name:    "invalid role",
			mutate:  func(s *models.StaffMember) { s.Role = "janitor" },
			wantMsg: "Invalid role",
		},
		{
			name:    "zero salary",
			mutate:  func(s *models.StaffMember) { s.BasicSalary = decimal.Zero },
			wantMsg: "BasicSalary must be positive",
		},
		{
			name:    "negative salary",
			mutate:  func(s *models.StaffMember) { s.BasicSalary = decimal.NewFromInt(-1) },
			wantMsg: "BasicSalary must be positive",
		},
		{
			name:    "invalid currency",
			mutate:  func(s *models.StaffMember) { s.Currency = "EUR" },
			wantMsg: "Invalid currency",
		},
		{
			name:    "zero start date",
			mutate:  func(s *models.StaffMember) { s.StartDate = time.Time{} },
			wantMsg: "StartDate is required",
		},
		{
			name:    "invalid email",
			mutate:  func(s *models.StaffMember) { s.Email = "not-an-email" },
			wantMsg: "Invalid email",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			staff := validStaffMember()
			tc.mutate(&staff)
			if got := ValidateStaffMember(&staff); got != tc.wantMsg {
				t.Errorf("expected %q, got %q", tc.wantMsg, got)
			}
		})
	}
}

func TestIsValidStaffRole(t *testing.T) {
	t.Parallel()

	for _, role := range []models.StaffRole{models.TeacherStaffRole, models.AdminStaffRole, models.SupportStaffRole} {
		if !IsValidStaffRole(role) {
			t.Errorf("%s must be accepted", role)
		}
	}
	if IsValidStaffRole("headmaster") {
		t.Error("unknown role must be rejected")
	}
}
