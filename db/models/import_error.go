package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BulkImportErrorType string

const (
	MissingDataErrorType BulkImportErrorType = "missing_data"
	DuplicateErrorType   BulkImportErrorType = "duplicate"
	CommitErrorType      BulkImportErrorType = "commit_failed"
)

type AddedViaType string

const (
	BulkAddedViaType AddedViaType = "bulk"
	FormAddedViaType AddedViaType = "form"
)

// BulkImportError records a rejected import row for later auditing. The
// original cell values are preserved as JSON because the log is shared
// across entity types with different column sets.
type BulkImportError struct {
	ID         uuid.UUID           `gorm:"type:uuid;primary_key;" json:"id"`
	EntityType string              `gorm:"not null" json:"entity_type"`
	RowNumber  int                 `json:"row_number"`
	Field      string              `json:"field"`
	Reason     string              `json:"reason"`
	RawFields  datatypes.JSON      `json:"raw_fields"`
	ErrorType  BulkImportErrorType `gorm:"type:varchar(20)" json:"error_type"`
	AddedVia   AddedViaType        `gorm:"type:varchar(10)" json:"added_via"`
	CreatedBy  string              `json:"created_by"`
	CreatedAt  time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}
