package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"school-records-backend/utils"

	"github.com/shopspring/decimal"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{6,19}$`)

// ValidateRows applies the spec's column rules to every row. A row
// accumulates every field's errors before being rejected so the operator
// sees the complete defect list in one pass; rows with zero errors become
// ValidatedRows. Output preserves row order, and errors within a row
// follow column declaration order.
func ValidateRows(spec ImportSpec, rows []RawRow) ([]ValidatedRow, []FieldError) {
	var validated []ValidatedRow
	var allErrors []FieldError

	for _, row := range rows {
		normalized, rowErrors := validateRow(spec, row)
		if len(rowErrors) > 0 {
			allErrors = append(allErrors, rowErrors...)
			continue
		}
		validated = append(validated, ValidatedRow{
			RowNumber:        row.RowNumber,
			NormalizedFields: normalized,
		})
	}

	return validated, allErrors
}

func validateRow(spec ImportSpec, row RawRow) (map[string]string, []FieldError) {
	normalized := make(map[string]string, len(spec.Columns))
	var rowErrors []FieldError

	for _, col := range spec.Columns {
		raw := strings.TrimSpace(row.Fields[col.Key])

		if raw == "" {
			if col.Default != "" {
				raw = col.Default
			} else if col.Required {
				rowErrors = append(rowErrors, FieldError{
					RowNumber: row.RowNumber,
					Field:     col.Key,
					Message:   fmt.Sprintf("%s is required", col.Label),
				})
				continue
			} else {
				continue
			}
		}

		value, message := normalizeValue(col, raw)
		if message != "" {
			rowErrors = append(rowErrors, FieldError{
				RowNumber:    row.RowNumber,
				Field:        col.Key,
				Message:      message,
				InvalidValue: raw,
			})
			continue
		}
		normalized[col.Key] = value
	}

	return normalized, rowErrors
}

// normalizeValue coerces a non-blank cell to its canonical string form, or
// returns a validation message. Coercion must be deterministic: the same
// cell always yields the same outcome regardless of when it is validated.
func normalizeValue(col FieldSpec, raw string) (string, string) {
	switch col.Kind {
	case TextField:
		return raw, ""

	case IntField:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return "", fmt.Sprintf("Invalid %s, expected a whole number", col.Label)
		}
		return strconv.Itoa(n), ""

	case DecimalField:
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return "", fmt.Sprintf("Invalid %s, expected a numeric amount", col.Label)
		}
		if col.Positive && (d.IsZero() || d.IsNegative()) {
			return "", fmt.Sprintf("Invalid or non-positive %s", col.Label)
		}
		if d.IsNegative() {
			return "", fmt.Sprintf("Invalid negative %s", col.Label)
		}
		return d.String(), ""

	case DateField:
		t, err := utils.ParseFlexibleDate(raw)
		if err != nil {
			return "", fmt.Sprintf("Invalid %s, expected a date like 2006-01-02", col.Label)
		}
		return t.Format("2006-01-02"), ""

	case EnumField:
		lowered := strings.ToLower(raw)
		for _, allowed := range col.Enum {
			if lowered == strings.ToLower(allowed) {
				return allowed, ""
			}
		}
		return "", fmt.Sprintf("Invalid %s, must be one of %s", col.Label, strings.Join(col.Enum, ", "))

	case BoolField:
		switch strings.ToLower(raw) {
		case "true", "yes", "y", "1":
			return "true", ""
		case "false", "no", "n", "0":
			return "false", ""
		}
		return "", fmt.Sprintf("Invalid %s, expected yes or no", col.Label)

	case EmailField:
		if !emailPattern.MatchString(raw) {
			return "", fmt.Sprintf("Invalid %s address", col.Label)
		}
		return strings.ToLower(raw), ""

	case PhoneField:
		if !phonePattern.MatchString(raw) {
			return "", fmt.Sprintf("Invalid %s number", col.Label)
		}
		return raw, ""
	}

	return raw, ""
}
