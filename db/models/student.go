package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Gender string

const (
	MaleGender   Gender = "male"
	FemaleGender Gender = "female"
)

type ClassLevel string

const (
	Form1ClassLevel      ClassLevel = "form_1"
	Form2ClassLevel      ClassLevel = "form_2"
	Form3ClassLevel      ClassLevel = "form_3"
	Form4ClassLevel      ClassLevel = "form_4"
	LowerSixthClassLevel ClassLevel = "lower_6"
	UpperSixthClassLevel ClassLevel = "upper_6"
)

// ClassLevels lists every accepted class level, in promotion order.
var ClassLevels = []ClassLevel{
	Form1ClassLevel, Form2ClassLevel, Form3ClassLevel, Form4ClassLevel,
	LowerSixthClassLevel, UpperSixthClassLevel,
}

// Student represents an enrolled learner. AdmissionNumber is the natural
// key used for duplicate detection during bulk imports.
type Student struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key;" json:"id"`
	AdmissionNumber string          `gorm:"unique;not null" json:"admission_number"`
	FirstName       string          `gorm:"not null" json:"first_name"`
	LastName        string          `gorm:"not null" json:"last_name"`
	Gender          Gender          `gorm:"type:varchar(10)" json:"gender"`
	DateOfBirth     time.Time       `json:"date_of_birth"`
	ClassLevel      ClassLevel      `gorm:"type:varchar(20)" json:"class_level"`
	GuardianPhone   string          `gorm:"not null" json:"guardian_phone"`
	GuardianEmail   *string         `json:"guardian_email"`
	FeesBalance     decimal.Decimal `gorm:"type:decimal(18,2)" json:"fees_balance"`
	Boarding        *bool           `gorm:"default:false" json:"boarding"`
	AddedVia        AddedViaType    `gorm:"type:varchar(10)" json:"added_via"`
	CreatedBy       string          `json:"created_by"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
