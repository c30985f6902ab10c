package services

import (
	"regexp"

	"school-records-backend/db/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateStaffMember checks a single-record form submission. Returns an
// empty string when the staff member is valid.
func ValidateStaffMember(staff *models.StaffMember) string {
	if staff.EmployeeNumber == "" {
		return "EmployeeNumber is required"
	}
	if staff.FirstName == "" {
		return "FirstName is required"
	}
	if staff.LastName == "" {
		return "LastName is required"
	}
	if !IsValidStaffRole(staff.Role) {
		return "Invalid role"
	}
	if staff.BasicSalary.Sign() <= 0 {
		return "BasicSalary must be positive"
	}
	if staff.Currency != models.USDSalaryCurrency && staff.Currency != models.ZWLSalaryCurrency {
		return "Invalid currency"
	}
	if staff.StartDate.IsZero() {
		return "StartDate is required"
	}
	if staff.Email == "" || !emailRegex.MatchString(staff.Email) {
		return "Invalid email"
	}
	return ""
}

func IsValidStaffRole(role models.StaffRole) bool {
	switch role {
	case models.TeacherStaffRole, models.AdminStaffRole, models.SupportStaffRole:
		return true
	}
	return false
}
