package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"school-records-backend/db/models"
	"school-records-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecordStore is the persisted-store collaborator the pipeline talks to.
// FindByBusinessKey never mutates the store; CreateRecord persists exactly
// one record per call.
type RecordStore interface {
	FindByBusinessKey(ctx context.Context, entityType string, keys []string) (map[string]struct{}, error)
	CreateRecord(ctx context.Context, entityType string, row ValidatedRow, createdBy string) (string, error)
}

// DuplicateKeyError reports a business-key collision detected by the store
// at commit time. The commit step is the authority on duplicates: a
// preview can be stale by the time the operator commits, so this is an
// expected per-row outcome, never a batch abort.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("record with key '%s' already exists", e.Key)
}

// StudentStore is the slice of the student repository the pipeline needs.
type StudentStore interface {
	FindExistingAdmissionNumbers(numbers []string) ([]string, error)
	CreateStudent(student *models.Student) (*models.Student, error)
}

// StaffStore is the slice of the staff repository the pipeline needs.
type StaffStore interface {
	FindExistingEmployeeNumbers(numbers []string) ([]string, error)
	CreateStaffMember(staff *models.StaffMember) (*models.StaffMember, error)
}

type gormRecordStore struct {
	students StudentStore
	staff    StaffStore
}

// NewGormRecordStore adapts the entity repositories to the RecordStore
// contract used by the duplicate resolver and commit executor.
func NewGormRecordStore(students StudentStore, staff StaffStore) RecordStore {
	return &gormRecordStore{students: students, staff: staff}
}

func (s *gormRecordStore) FindByBusinessKey(ctx context.Context, entityType string, keys []string) (map[string]struct{}, error) {
	if len(keys) == 0 {
		return map[string]struct{}{}, nil
	}

	var existing []string
	var err error
	switch entityType {
	case "students":
		existing, err = s.students.FindExistingAdmissionNumbers(keys)
	case "staff":
		existing, err = s.staff.FindExistingEmployeeNumbers(keys)
	default:
		return nil, fmt.Errorf("unknown entity type '%s'", entityType)
	}
	if err != nil {
		return nil, err
	}

	found := make(map[string]struct{}, len(existing))
	for _, key := range existing {
		found[key] = struct{}{}
	}
	return found, nil
}

func (s *gormRecordStore) CreateRecord(ctx context.Context, entityType string, row ValidatedRow, createdBy string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch entityType {
	case "students":
		student, err := studentFromRow(row, createdBy)
		if err != nil {
			return "", err
		}
		created, err := s.students.CreateStudent(student)
		if err != nil {
			return "", mapStoreError(err, row.NormalizedFields["admission_number"])
		}
		return created.ID.String(), nil

	case "staff":
		staff, err := staffFromRow(row, createdBy)
		if err != nil {
			return "", err
		}
		created, err := s.staff.CreateStaffMember(staff)
		if err != nil {
			return "", mapStoreError(err, row.NormalizedFields["employee_number"])
		}
		return created.ID.String(), nil
	}

	return "", fmt.Errorf("unknown entity type '%s'", entityType)
}

// mapStoreError turns a unique-constraint violation into a
// DuplicateKeyError so the executor can label the failure.
func mapStoreError(err error, key string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
		return &DuplicateKeyError{Key: key}
	}
	return err
}

func studentFromRow(row ValidatedRow, createdBy string) (*models.Student, error) {
	fields := row.NormalizedFields

	dob, err := time.Parse("2006-01-02", fields["date_of_birth"])
	if err != nil {
		return nil, fmt.Errorf("row %d: invalid normalized date of birth: %w", row.RowNumber, err)
	}
	fees := decimal.Zero
	if raw := fields["fees_balance"]; raw != "" {
		fees, err = decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid normalized fees balance: %w", row.RowNumber, err)
		}
	}
	boarding := fields["boarding"] == "true"

	student := &models.Student{
		AdmissionNumber: fields["admission_number"],
		FirstName:       fields["first_name"],
		LastName:        fields["last_name"],
		Gender:          models.Gender(fields["gender"]),
		DateOfBirth:     dob,
		ClassLevel:      models.ClassLevel(fields["class_level"]),
		GuardianPhone:   fields["guardian_phone"],
		FeesBalance:     fees,
		Boarding:        &boarding,
		AddedVia:        models.BulkAddedViaType,
		CreatedBy:       createdBy,
	}
	if email := fields["guardian_email"]; email != "" {
		student.GuardianEmail = utils.StringPtr(email)
	}
	return student, nil
}

func staffFromRow(row ValidatedRow, createdBy string) (*models.StaffMember, error) {
	fields := row.NormalizedFields

	startDate, err := time.Parse("2006-01-02", fields["start_date"])
	if err != nil {
		return nil, fmt.Errorf("row %d: invalid normalized start date: %w", row.RowNumber, err)
	}
	salary, err := decimal.NewFromString(fields["basic_salary"])
	if err != nil {
		return nil, fmt.Errorf("row %d: invalid normalized basic salary: %w", row.RowNumber, err)
	}

	return &models.StaffMember{
		EmployeeNumber: fields["employee_number"],
		FirstName:      fields["first_name"],
		LastName:       fields["last_name"],
		Role:           models.StaffRole(fields["role"]),
		Department:     fields["department"],
		BasicSalary:    salary,
		Currency:       models.SalaryCurrency(fields["currency"]),
		StartDate:      startDate,
		Email:          fields["email"],
		AddedVia:       models.BulkAddedViaType,
		CreatedBy:      createdBy,
	}, nil
}
