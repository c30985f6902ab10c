package repositories

import (
	"errors"
	"fmt"
	"strings"

	"school-records-backend/db/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentRepository interface {
	CreateStudent(student *models.Student) (*models.Student, error)
	GetStudentByAdmissionNumber(admissionNumber string) (*models.Student, error)
	FindExistingAdmissionNumbers(numbers []string) ([]string, error)
	GetFilteredStudents(pageSize int, offset int, filters map[string]string) ([]models.Student, int64, error)
	GetStudentsByIDs(ids []string) ([]models.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{
		db: db,
	}
}

func (r *studentRepository) CreateStudent(student *models.Student) (*models.Student, error) {
	student.ID = uuid.New()
	err := r.db.Create(student).Error
	return student, err
}

func (r *studentRepository) GetStudentByAdmissionNumber(admissionNumber string) (*models.Student, error) {
	var student models.Student
	err := r.db.First(&student, "admission_number = ?", admissionNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("student with admission number '%s' not found", admissionNumber)
		}
		return nil, err
	}
	return &student, nil
}

// FindExistingAdmissionNumbers returns the subset of the given admission
// numbers that already exist in the store.
func (r *studentRepository) FindExistingAdmissionNumbers(numbers []string) ([]string, error) {
	if len(numbers) == 0 {
		return nil, nil
	}

	var existing []string
	err := r.db.Model(&models.Student{}).
		Where("admission_number IN ?", numbers).
		Pluck("admission_number", &existing).Error
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (r *studentRepository) GetStudentsByIDs(ids []string) ([]models.Student, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var students []models.Student
	err := r.db.Where("id IN ?", ids).Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

// GetFilteredStudents retrieves students with filtering and pagination
func (r *studentRepository) GetFilteredStudents(pageSize int, offset int, filters map[string]string) ([]models.Student, int64, error) {
	var students []models.Student
	var total int64

	db := r.db.Model(&models.Student{})

	for key, value := range filters {
		switch key {
		case "class_level":
			db = db.Where("class_level = ?", value)
		case "gender":
			db = db.Where("gender = ?", value)
		case "boarding":
			if strings.ToLower(value) == "true" {
				db = db.Where("boarding = ?", true)
			} else if strings.ToLower(value) == "false" {
				db = db.Where("boarding = ?", false)
			}
		case "start_date":
			db = db.Where("Date(created_at) >= ?", value)
		case "end_date":
			db = db.Where("Date(created_at) <= ?", value)
		case "name":
			db = db.Where("first_name ILIKE ? OR last_name ILIKE ?", "%"+value+"%", "%"+value+"%")
		case "created_by":
			db = db.Where("created_by ILIKE ?", "%"+value+"%")
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Limit(pageSize).Offset(offset).Order("created_at DESC").Find(&students).Error; err != nil {
		return nil, 0, err
	}

	return students, total, nil
}
