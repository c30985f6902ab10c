package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type StaffRole string

const (
	TeacherStaffRole StaffRole = "teacher"
	AdminStaffRole   StaffRole = "admin"
	SupportStaffRole StaffRole = "support"
)

type SalaryCurrency string

const (
	USDSalaryCurrency SalaryCurrency = "USD"
	ZWLSalaryCurrency SalaryCurrency = "ZWL"
)

// StaffMember represents an employee on the payroll. EmployeeNumber is the
// natural key used for duplicate detection during bulk imports.
type StaffMember struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	EmployeeNumber string          `gorm:"unique;not null" json:"employee_number"`
	FirstName      string          `gorm:"not null" json:"first_name"`
	LastName       string          `gorm:"not null" json:"last_name"`
	Role           StaffRole       `gorm:"type:varchar(20)" json:"role"`
	Department     string          `json:"department"`
	BasicSalary    decimal.Decimal `gorm:"type:decimal(18,2)" json:"basic_salary"`
	Currency       SalaryCurrency  `gorm:"type:varchar(5)" json:"currency"`
	StartDate      time.Time       `json:"start_date"`
	Email          string          `gorm:"unique;not null" json:"email"`
	AddedVia       AddedViaType    `gorm:"type:varchar(10)" json:"added_via"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
