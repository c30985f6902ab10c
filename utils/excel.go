package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/xuri/excelize/v2"
)

// Generated reports are written here and served statically.
const GeneratedFilesDir = "./public/files"

// EnsureDirectoryExists ensures the specified directory exists before file saving
func EnsureDirectoryExists(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return fmt.Errorf("error creating directory: %v", err)
		}
	}
	return nil
}

// GenerateExcel creates an Excel file from a slice of structs. Each header
// must match an exported field name on the element type; unmatched headers
// produce empty cells. Returns the public path of the saved file.
func GenerateExcel(data interface{}, taskName string, headers []string) (string, error) {
	if err := EnsureDirectoryExists(GeneratedFilesDir); err != nil {
		return "", fmt.Errorf("failed to ensure directory exists: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheetName := f.GetSheetName(0)

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", fmt.Errorf("error naming header cell: %v", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return "", fmt.Errorf("error setting header %s: %v", header, err)
		}
	}

	dataSlice := reflect.ValueOf(data)
	if dataSlice.Kind() != reflect.Slice {
		return "", fmt.Errorf("expected data to be a slice")
	}

	for row := 0; row < dataSlice.Len(); row++ {
		item := dataSlice.Index(row)
		for col, header := range headers {
			field := item.FieldByName(header)
			if !field.IsValid() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return "", fmt.Errorf("error naming cell for field %s: %v", header, err)
			}
			if err := f.SetCellValue(sheetName, cell, fmt.Sprintf("%v", field.Interface())); err != nil {
				return "", fmt.Errorf("error setting value for field %s (row %d): %v", header, row+2, err)
			}
		}
	}

	fileName := fmt.Sprintf("%s_%s.xlsx", taskName, time.Now().Format("2006-01-02_15-04-05"))
	relativeFilePath := filepath.Join(GeneratedFilesDir, fileName)

	if err := f.SaveAs(relativeFilePath); err != nil {
		return "", err
	}

	return fmt.Sprintf("/public/files/%s", fileName), nil
}
