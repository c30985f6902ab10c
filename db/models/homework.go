package models

import (
	"time"

	"github.com/google/uuid"
)

// Homework is a simple assignment record attached to a class level.
type Homework struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;" json:"id"`
	Title      string     `gorm:"not null" json:"title"`
	Subject    string     `gorm:"not null" json:"subject"`
	ClassLevel ClassLevel `gorm:"type:varchar(20)" json:"class_level"`
	DueDate    time.Time  `json:"due_date"`
	CreatedBy  string     `json:"created_by"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
