package repositories

import (
	"errors"
	"fmt"

	"school-records-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffRepository interface {
	CreateStaffMember(staff *models.StaffMember) (*models.StaffMember, error)
	GetStaffByEmployeeNumber(employeeNumber string) (*models.StaffMember, error)
	FindExistingEmployeeNumbers(numbers []string) ([]string, error)
	GetFilteredStaff(pageSize int, offset int, filters map[string]string) ([]models.StaffMember, int64, error)
}

type staffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{
		db: db,
	}
}

func (r *staffRepository) CreateStaffMember(staff *models.StaffMember) (*models.StaffMember, error) {
	staff.ID = uuid.New()
	err := r.db.Create(staff).Error
	return staff, err
}

func (r *staffRepository) GetStaffByEmployeeNumber(employeeNumber string) (*models.StaffMember, error) {
	var staff models.StaffMember
	err := r.db.First(&staff, "employee_number = ?", employeeNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("staff member with employee number '%s' not found", employeeNumber)
		}
		return nil, err
	}
	return &staff, nil
}

// FindExistingEmployeeNumbers returns the subset of the given employee
// numbers that already exist in the store.
func (r *staffRepository) FindExistingEmployeeNumbers(numbers []string) ([]string, error) {
	if len(numbers) == 0 {
		return nil, nil
	}

	var existing []string
	err := r.db.Model(&models.StaffMember{}).
		Where("employee_number IN ?", numbers).
		Pluck("employee_number", &existing).Error
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// GetFilteredStaff retrieves staff members with filtering and pagination
func (r *staffRepository) GetFilteredStaff(pageSize int, offset int, filters map[string]string) ([]models.StaffMember, int64, error) {
	var staff []models.StaffMember
	var total int64

	db := r.db.Model(&models.StaffMember{})

	for key, value := range filters {
		switch key {
		case "role":
			db = db.Where("role = ?", value)
		case "department":
			db = db.Where("department ILIKE ?", "%"+value+"%")
		case "currency":
			db = db.Where("currency = ?", value)
		case "start_date":
			db = db.Where("Date(created_at) >= ?", value)
		case "end_date":
			db = db.Where("Date(created_at) <= ?", value)
		case "name":
			db = db.Where("first_name ILIKE ? OR last_name ILIKE ?", "%"+value+"%", "%"+value+"%")
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Limit(pageSize).Offset(offset).Order("created_at DESC").Find(&staff).Error; err != nil {
		return nil, 0, err
	}

	return staff, total, nil
}
