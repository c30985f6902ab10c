package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Accepted upload media types.
const (
	CSVMediaType  = "text/csv"
	XLSXMediaType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Fatal decode conditions. These abort the whole operation before any row
// is processed and are never attributed to a row.
var (
	ErrFileTooLarge         = errors.New("file exceeds the maximum allowed size")
	ErrTooManyRows          = errors.New("file exceeds the maximum allowed row count")
	ErrUnsupportedMediaType = errors.New("unsupported file type, expected CSV or XLSX")
	ErrEmptyFile            = errors.New("file contains no header row")
)

// DecodeRows turns an uploaded file into ordered RawRows. The first row is
// treated as the header and matched against the spec's column labels/keys;
// unknown columns are ignored. Fully blank rows are dropped but row
// numbering still reflects the original file position.
func DecodeRows(data []byte, mediaType string, spec ImportSpec) ([]RawRow, error) {
	if int64(len(data)) > spec.MaxFileBytes {
		return nil, ErrFileTooLarge
	}

	var records [][]string
	var err error
	switch normalizeMediaType(mediaType) {
	case CSVMediaType:
		records, err = decodeCSV(data)
	case XLSXMediaType:
		records, err = decodeXLSX(data)
	default:
		return nil, ErrUnsupportedMediaType
	}
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrEmptyFile
	}
	if len(records)-1 > spec.MaxRows {
		return nil, ErrTooManyRows
	}

	columnForHeader := headerIndex(records[0], spec)

	rows := make([]RawRow, 0, len(records)-1)
	for i, record := range records[1:] {
		if isBlankRow(record) {
			continue
		}
		fields := make(map[string]string, len(spec.Columns))
		for pos, key := range columnForHeader {
			if key == "" || pos >= len(record) {
				continue
			}
			fields[key] = strings.TrimSpace(record[pos])
		}
		rows = append(rows, RawRow{RowNumber: i + 1, Fields: fields})
	}

	return rows, nil
}

func decodeCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // rows may be ragged, validation handles gaps
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV file: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

func decodeXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	records, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from Excel sheet: %w", err)
	}
	return records, nil
}

// headerIndex maps each header cell position to the spec column key it
// names. Both the display label and the raw key are accepted,
// case-insensitively, so files produced from either the template or a
// previous error report line up.
func headerIndex(header []string, spec ImportSpec) []string {
	keyForName := make(map[string]string, len(spec.Columns)*2)
	for _, col := range spec.Columns {
		keyForName[strings.ToLower(col.Label)] = col.Key
		keyForName[strings.ToLower(col.Key)] = col.Key
	}

	index := make([]string, len(header))
	for pos, cell := range header {
		index[pos] = keyForName[strings.ToLower(strings.TrimSpace(cell))]
	}
	return index
}

func isBlankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func normalizeMediaType(mediaType string) string {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}
	switch mediaType {
	case "application/csv", "text/plain":
		return CSVMediaType
	}
	return mediaType
}
