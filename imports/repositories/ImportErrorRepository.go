package repositories

import (
	"school-records-backend/db/models"

	"gorm.io/gorm"
)

type ImportErrorRepository interface {
	LogBulkImportErrors(importErrors []models.BulkImportError) error
	LogEmailSent(emailLog *models.EmailLog) error
}

type importErrorRepository struct {
	db *gorm.DB
}

func NewImportErrorRepository(db *gorm.DB) ImportErrorRepository {
	return &importErrorRepository{
		db: db,
	}
}

func (r *importErrorRepository) LogBulkImportErrors(importErrors []models.BulkImportError) error {
	if len(importErrors) == 0 {
		return nil
	}
	return r.db.Create(&importErrors).Error
}

func (r *importErrorRepository) LogEmailSent(emailLog *models.EmailLog) error {
	return r.db.Create(emailLog).Error
}
