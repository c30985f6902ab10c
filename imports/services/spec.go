package services

import (
	"school-records-backend/db/models"
)

// FieldKind selects the coercion applied to a column's raw text.
type FieldKind string

const (
	TextField    FieldKind = "text"
	IntField     FieldKind = "int"
	DecimalField FieldKind = "decimal"
	DateField    FieldKind = "date"
	EnumField    FieldKind = "enum"
	BoolField    FieldKind = "bool"
	EmailField   FieldKind = "email"
	PhoneField   FieldKind = "phone"
)

// FieldSpec describes one column of an import file.
type FieldSpec struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Required bool      `json:"required"`
	Kind     FieldKind `json:"kind"`
	Enum     []string  `json:"enum,omitempty"`
	// Default is applied when the cell is blank and the column is optional.
	Default string `json:"default,omitempty"`
	// Positive rejects zero and negative decimal values.
	Positive bool   `json:"positive,omitempty"`
	Example  string `json:"example,omitempty"`
}

// ImportSpec is the per-entity-type import configuration. Instances are
// immutable after startup; look them up with GetImportSpec.
type ImportSpec struct {
	EntityType    string
	Columns       []FieldSpec
	BusinessKey   string
	UniqueInBatch bool
	MaxRows       int
	MaxFileBytes  int64
}

const (
	defaultMaxFileBytes = 10 << 20 // 10 MiB
	defaultMaxRows      = 5000
)

// MaxUploadBytes is the largest upload any import spec accepts. The HTTP
// body limit is derived from it so oversized files are rejected before the
// decoder sees them.
const MaxUploadBytes int64 = defaultMaxFileBytes

var importSpecs = map[string]ImportSpec{
	"students": {
		EntityType:    "students",
		BusinessKey:   "admission_number",
		UniqueInBatch: true,
		MaxRows:       defaultMaxRows,
		MaxFileBytes:  defaultMaxFileBytes,
		Columns: []FieldSpec{
			{Key: "admission_number", Label: "Admission Number", Required: true, Kind: TextField, Example: "ADM-2026-0153"},
			{Key: "first_name", Label: "First Name", Required: true, Kind: TextField, Example: "Tariro"},
			{Key: "last_name", Label: "Last Name", Required: true, Kind: TextField, Example: "Moyo"},
			{Key: "gender", Label: "Gender", Required: true, Kind: EnumField, Enum: []string{string(models.MaleGender), string(models.FemaleGender)}, Example: "female"},
			{Key: "date_of_birth", Label: "Date Of Birth", Required: true, Kind: DateField, Example: "2012-03-18"},
			{Key: "class_level", Label: "Class Level", Required: true, Kind: EnumField, Enum: classLevelValues(), Example: "form_1"},
			{Key: "guardian_phone", Label: "Guardian Phone", Required: true, Kind: PhoneField, Example: "+263771234567"},
			{Key: "guardian_email", Label: "Guardian Email", Kind: EmailField, Example: "guardian@example.com"},
			{Key: "fees_balance", Label: "Fees Balance", Kind: DecimalField, Default: "0", Example: "150.00"},
			{Key: "boarding", Label: "Boarding", Kind: BoolField, Default: "false", Example: "no"},
		},
	},
	"staff": {
		EntityType:    "staff",
		BusinessKey:   "employee_number",
		UniqueInBatch: true,
		MaxRows:       defaultMaxRows,
		MaxFileBytes:  defaultMaxFileBytes,
		Columns: []FieldSpec{
			{Key: "employee_number", Label: "Employee Number", Required: true, Kind: TextField, Example: "EMP-0042"},
			{Key: "first_name", Label: "First Name", Required: true, Kind: TextField, Example: "Rudo"},
			{Key: "last_name", Label: "Last Name", Required: true, Kind: TextField, Example: "Chikafu"},
			{Key: "role", Label: "Role", Required: true, Kind: EnumField, Enum: []string{string(models.TeacherStaffRole), string(models.AdminStaffRole), string(models.SupportStaffRole)}, Example: "teacher"},
			{Key: "department", Label: "Department", Kind: TextField, Example: "Sciences"},
			{Key: "basic_salary", Label: "Basic Salary", Required: true, Kind: DecimalField, Positive: true, Example: "850.00"},
			{Key: "currency", Label: "Currency", Required: true, Kind: EnumField, Enum: []string{string(models.USDSalaryCurrency), string(models.ZWLSalaryCurrency)}, Example: "USD"},
			{Key: "start_date", Label: "Start Date", Required: true, Kind: DateField, Example: "2024-01-08"},
			{Key: "email", Label: "Email", Required: true, Kind: EmailField, Example: "r.chikafu@school.example"},
		},
	},
}

// GetImportSpec returns the import configuration for an entity type.
func GetImportSpec(entityType string) (ImportSpec, bool) {
	spec, ok := importSpecs[entityType]
	return spec, ok
}

// SupportedEntityTypes lists the entity types that can be bulk imported.
func SupportedEntityTypes() []string {
	return []string{"students", "staff"}
}

func classLevelValues() []string {
	values := make([]string, 0, len(models.ClassLevels))
	for _, level := range models.ClassLevels {
		values = append(values, string(level))
	}
	return values
}
