package services

import (
	"regexp"

	"school-records-backend/db/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateStudent checks a single-record form submission. Returns an
// empty string when the student is valid.
func ValidateStudent(student *models.Student) string {
	if student.AdmissionNumber == "" {
		return "AdmissionNumber is required"
	}
	if student.FirstName == "" {
		return "FirstName is required"
	}
	if student.LastName == "" {
		return "LastName is required"
	}
	if student.Gender != models.MaleGender && student.Gender != models.FemaleGender {
		return "Invalid gender"
	}
	if !IsValidClassLevel(student.ClassLevel) {
		return "Invalid class level"
	}
	if student.GuardianPhone == "" {
		return "GuardianPhone is required"
	}
	if student.GuardianEmail != nil && !emailRegex.MatchString(*student.GuardianEmail) {
		return "Invalid guardian email"
	}
	if student.FeesBalance.IsNegative() {
		return "Fees balance cannot be negative"
	}
	return ""
}

func IsValidClassLevel(level models.ClassLevel) bool {
	for _, allowed := range models.ClassLevels {
		if level == allowed {
			return true
		}
	}
	return false
}
