package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	bleveRepositories "school-records-backend/bleve/repositories"
	"school-records-backend/config"
	"school-records-backend/db/models"
	"school-records-backend/imports/repositories"
	"school-records-backend/imports/services"
	"school-records-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type ImportController struct {
	Store       services.RecordStore
	Executor    *services.CommitExecutor
	ErrorRepo   repositories.ImportErrorRepository
	BleveRepo   bleveRepositories.StudentIndexRepository
	RedisClient *redis.Client
}

// errorReportRow mirrors the fixed error-report layout for the emailed
// spreadsheet attachment.
type errorReportRow struct {
	RowNumber    int
	Field        string
	Message      string
	InvalidValue string
}

var errorReportExcelHeaders = []string{"RowNumber", "Field", "Message", "InvalidValue"}

// GetImportTemplateController returns the column headers and an example
// row for an entity type, as CSV or XLSX.
func (ic *ImportController) GetImportTemplateController(c *fiber.Ctx) error {
	entityType := c.Params("entityType")
	spec, ok := services.GetImportSpec(entityType)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Unknown entity type '%s'", entityType),
		})
	}

	format := c.Query("format", "csv")
	switch format {
	case "csv":
		document, err := services.BuildTemplateCSV(spec)
		if err != nil {
			config.Logger.Error("Failed to build CSV template", zap.String("entity_type", entityType), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to build template"})
		}
		c.Set(fiber.HeaderContentType, services.CSVMediaType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s_template.csv"`, entityType))
		return c.Send(document)

	case "xlsx":
		document, err := services.BuildTemplateXLSX(spec)
		if err != nil {
			config.Logger.Error("Failed to build XLSX template", zap.String("entity_type", entityType), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to build template"})
		}
		c.Set(fiber.HeaderContentType, services.XLSXMediaType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s_template.xlsx"`, entityType))
		return c.Send(document)
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid format, expected csv or xlsx"})
}

// PreviewImportController decodes and validates an uploaded file and
// returns the summary, sample rows and full error list for operator
// review. Nothing is persisted except the best-effort error log; the
// client resubmits the validated rows to the execute endpoint.
func (ic *ImportController) PreviewImportController(c *fiber.Ctx) error {
	entityType := c.Params("entityType")
	spec, ok := services.GetImportSpec(entityType)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Unknown entity type '%s'", entityType),
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Failed to get file"})
	}

	userEmail := c.FormValue("created_by")
	if userEmail == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing 'created_by' field in FormData"})
	}

	if fileHeader.Size > spec.MaxFileBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{"message": services.ErrFileTooLarge.Error()})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to open file"})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to read file"})
	}

	mediaType := mediaTypeForUpload(fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	rawRows, err := services.DecodeRows(data, mediaType, spec)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, services.ErrFileTooLarge) || errors.Is(err, services.ErrTooManyRows) {
			status = fiber.StatusRequestEntityTooLarge
		}
		return c.Status(status).JSON(fiber.Map{"message": err.Error()})
	}

	validRows, fieldErrors := services.ValidateRows(spec, rawRows)

	if _, err := services.ResolveDuplicates(c.Context(), ic.Store, spec, validRows); err != nil {
		config.Logger.Error("Duplicate check failed", zap.String("entity_type", entityType), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to check for duplicates in database",
		})
	}

	preview := services.AssemblePreview(len(rawRows), validRows, fieldErrors)

	var downloadLink string
	if len(preview.Errors) > 0 {
		ic.logImportErrors(spec.EntityType, preview.Errors, rawRows, userEmail, models.MissingDataErrorType)
		downloadLink = ic.publishErrorReport(spec.EntityType, preview.Errors, userEmail, "validation")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "Preview generated",
		"data":          preview,
		"download_link": downloadLink,
	})
}

type executeImportRequest struct {
	Rows      []services.ValidatedRow   `json:"rows"`
	Options   services.ExecutionOptions `json:"options"`
	CreatedBy string                    `json:"created_by"`
}

// ExecuteImportController commits the operator-approved rows. Each row is
// attempted independently; store-level collisions become per-row failures
// in the returned summary, never a batch abort.
func (ic *ImportController) ExecuteImportController(c *fiber.Ctx) error {
	entityType := c.Params("entityType")
	spec, ok := services.GetImportSpec(entityType)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Unknown entity type '%s'", entityType),
		})
	}

	var req executeImportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}
	if req.CreatedBy == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing 'created_by' field"})
	}

	summary := ic.Executor.Execute(c.Context(), spec, req.Rows, req.Options, req.CreatedBy)

	var downloadLink string
	if len(summary.Failures) > 0 {
		ic.logCommitFailures(spec.EntityType, summary.Failures, req.Rows, req.CreatedBy)
		downloadLink = ic.publishErrorReport(spec.EntityType, summary.Failures, req.CreatedBy, "commit")
	}

	// Index committed students for search. Indexing failures do not fail
	// the import; the search index is eventually consistent.
	if spec.EntityType == "students" && ic.BleveRepo != nil && len(summary.CreatedIDs) > 0 {
		if err := ic.BleveRepo.IndexStudentsByIDs(summary.CreatedIDs); err != nil {
			config.Logger.Warn("Failed to index imported students", zap.Error(err))
		}
	}

	if ic.RedisClient != nil && summary.SuccessCount > 0 {
		utils.InvalidateCacheAsync(ic.RedisClient, spec.EntityType)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "Bulk import completed",
		"data":          summary,
		"download_link": downloadLink,
	})
}

type exportErrorsRequest struct {
	Errors []services.FieldError `json:"errors"`
}

// ExportErrorReportController renders a supplied error list as a
// downloadable report in the fixed four-column layout.
func (ic *ImportController) ExportErrorReportController(c *fiber.Ctx) error {
	var req exportErrorsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	format := c.Query("format", "csv")
	switch format {
	case "csv":
		document, err := services.BuildErrorReportCSV(req.Errors)
		if err != nil {
			config.Logger.Error("Failed to build error report", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to build error report"})
		}
		c.Set(fiber.HeaderContentType, services.CSVMediaType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="import_errors.csv"`)
		return c.Send(document)

	case "xlsx":
		document, err := services.BuildErrorReportXLSX(req.Errors)
		if err != nil {
			config.Logger.Error("Failed to build error report", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to build error report"})
		}
		c.Set(fiber.HeaderContentType, services.XLSXMediaType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="import_errors.xlsx"`)
		return c.Send(document)
	}

	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid format, expected csv or xlsx"})
}

// logImportErrors persists rejected rows for auditing. Failures here are
// logged but never fail the request.
func (ic *ImportController) logImportErrors(entityType string, fieldErrors []services.FieldError, rawRows []services.RawRow, userEmail string, errorType models.BulkImportErrorType) {
	rawByRow := make(map[int]map[string]string, len(rawRows))
	for _, row := range rawRows {
		rawByRow[row.RowNumber] = row.Fields
	}

	records := make([]models.BulkImportError, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		rawFields, err := json.Marshal(rawByRow[fieldError.RowNumber])
		if err != nil {
			rawFields = []byte("{}")
		}
		records = append(records, models.BulkImportError{
			ID:         uuid.New(),
			EntityType: entityType,
			RowNumber:  fieldError.RowNumber,
			Field:      fieldError.Field,
			Reason:     fieldError.Message,
			RawFields:  datatypes.JSON(rawFields),
			ErrorType:  errorType,
			AddedVia:   models.BulkAddedViaType,
			CreatedBy:  userEmail,
		})
	}

	if err := ic.ErrorRepo.LogBulkImportErrors(records); err != nil {
		config.Logger.Warn("Failed to log import errors", zap.String("entity_type", entityType), zap.Error(err))
	}
}

// logCommitFailures persists per-row commit failures, labeling collisions
// separately from other store errors.
func (ic *ImportController) logCommitFailures(entityType string, failures []services.FieldError, rows []services.ValidatedRow, userEmail string) {
	fieldsByRow := make(map[int]map[string]string, len(rows))
	for _, row := range rows {
		fieldsByRow[row.RowNumber] = row.NormalizedFields
	}

	records := make([]models.BulkImportError, 0, len(failures))
	for _, failure := range failures {
		errorType := models.CommitErrorType
		if strings.Contains(failure.Message, "already exists") {
			errorType = models.DuplicateErrorType
		}
		rawFields, err := json.Marshal(fieldsByRow[failure.RowNumber])
		if err != nil {
			rawFields = []byte("{}")
		}
		records = append(records, models.BulkImportError{
			ID:         uuid.New(),
			EntityType: entityType,
			RowNumber:  failure.RowNumber,
			Field:      failure.Field,
			Reason:     failure.Message,
			RawFields:  datatypes.JSON(rawFields),
			ErrorType:  errorType,
			AddedVia:   models.BulkAddedViaType,
			CreatedBy:  userEmail,
		})
	}

	if err := ic.ErrorRepo.LogBulkImportErrors(records); err != nil {
		config.Logger.Warn("Failed to log commit failures", zap.String("entity_type", entityType), zap.Error(err))
	}
}

// publishErrorReport writes the error list to a spreadsheet under the
// public files directory, emails the operator a download link and records
// the email. Every step is best-effort: a failure is logged and the
// import response simply goes out without a link.
func (ic *ImportController) publishErrorReport(entityType string, fieldErrors []services.FieldError, userEmail, stage string) string {
	reportRows := make([]errorReportRow, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		reportRows = append(reportRows, errorReportRow{
			RowNumber:    fieldError.RowNumber,
			Field:        fieldError.Field,
			Message:      fieldError.Message,
			InvalidValue: fieldError.InvalidValue,
		})
	}

	taskName := fmt.Sprintf("%s_import_errors_%s", entityType, uuid.New().String())
	filePath, err := utils.GenerateExcel(reportRows, taskName, errorReportExcelHeaders)
	if err != nil {
		config.Logger.Warn("Failed to generate error report spreadsheet", zap.Error(err))
		return ""
	}

	downloadLink := utils.GenerateDownloadLink(filePath)

	subject := fmt.Sprintf("%s import %s errors - %s", entityType, stage, time.Now().Format("2006-01-02 15:04:05"))
	message := "Please find the attached report with the rows that could not be imported."
	if err := utils.SendEmail(userEmail, message, subject, "", downloadLink); err != nil {
		config.Logger.Warn("Failed to send error report email", zap.String("recipient", userEmail), zap.Error(err))
		return downloadLink
	}

	active := true
	emailLog := models.EmailLog{
		ID:             uuid.New(),
		Recipient:      userEmail,
		Subject:        subject,
		Message:        message,
		SentAt:         utils.Today(),
		Active:         &active,
		AttachmentPath: downloadLink,
	}
	if err := ic.ErrorRepo.LogEmailSent(&emailLog); err != nil {
		config.Logger.Warn("Failed to log email", zap.Error(err))
	}

	return downloadLink
}

// mediaTypeForUpload trusts the declared content type when it is one we
// accept, falling back to the filename extension (browsers often send
// application/octet-stream for spreadsheets).
func mediaTypeForUpload(declared, filename string) string {
	switch declared {
	case services.CSVMediaType, services.XLSXMediaType:
		return declared
	}
	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		return services.CSVMediaType
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		return services.XLSXMediaType
	}
	return declared
}
