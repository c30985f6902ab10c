package repositories

import (
	"fmt"

	bleveServices "school-records-backend/bleve/services"
	"school-records-backend/db/models"
	studentRepositories "school-records-backend/students/repositories"

	"github.com/blevesearch/bleve/v2"
)

const studentIndexName = "students"

// studentDocument is the flattened shape stored in the search index.
type studentDocument struct {
	AdmissionNumber string `json:"admission_number"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ClassLevel      string `json:"class_level"`
	GuardianPhone   string `json:"guardian_phone"`
}

type StudentIndexRepository interface {
	IndexSingleStudent(student models.Student) error
	IndexStudentsByIDs(ids []string) error
	SearchStudents(queryString string, size int) ([]map[string]interface{}, error)
}

type studentIndexRepository struct {
	indexing bleveServices.IndexingServiceInterface
	students studentRepositories.StudentRepository
}

func NewStudentIndexRepository(indexing bleveServices.IndexingServiceInterface, students studentRepositories.StudentRepository) StudentIndexRepository {
	return &studentIndexRepository{
		indexing: indexing,
		students: students,
	}
}

func (r *studentIndexRepository) IndexSingleStudent(student models.Student) error {
	return r.indexing.IndexDocument(studentIndexName, student.ID.String(), studentDocument{
		AdmissionNumber: student.AdmissionNumber,
		FirstName:       student.FirstName,
		LastName:        student.LastName,
		ClassLevel:      string(student.ClassLevel),
		GuardianPhone:   student.GuardianPhone,
	})
}

// IndexStudentsByIDs loads freshly created students from the store and
// indexes them. Indexing failures are per-student; the first error is
// returned after attempting the rest.
func (r *studentIndexRepository) IndexStudentsByIDs(ids []string) error {
	students, err := r.students.GetStudentsByIDs(ids)
	if err != nil {
		return fmt.Errorf("failed to load students for indexing: %w", err)
	}

	var firstErr error
	for _, student := range students {
		if err := r.IndexSingleStudent(student); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *studentIndexRepository) SearchStudents(queryString string, size int) ([]map[string]interface{}, error) {
	q := bleve.NewMatchQuery(queryString)
	result, err := r.indexing.SearchIndex(studentIndexName, q, size)
	if err != nil {
		return nil, err
	}

	hits := make([]map[string]interface{}, 0, len(result.Hits))
	for _, hit := range result.Hits {
		fields := hit.Fields
		if fields == nil {
			fields = map[string]interface{}{}
		}
		fields["id"] = hit.ID
		hits = append(hits, fields)
	}
	return hits, nil
}
