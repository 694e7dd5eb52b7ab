package export_import_errors

import (
	exportImportErrors "github.com/m04kA/SMC-FleetService/internal/usecase/export_import_errors"
)

// ExportErrorsRequest HTTP request model
// Клиент возвращает список ошибок из ответа импорта как есть.
type ExportErrorsRequest struct {
	Errors []ImportErrorItem `json:"errors"`
}

// ImportErrorItem одна ошибка импорта из ответа импорта
type ImportErrorItem struct {
	Row       int    `json:"row"`
	Reference string `json:"reference"`
	Message   string `json:"message"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ExportErrorsRequest) ToUseCaseRequest(staffID int64) *exportImportErrors.Request {
	importErrors := make([]exportImportErrors.ImportError, 0, len(r.Errors))
	for _, e := range r.Errors {
		importErrors = append(importErrors, exportImportErrors.ImportError{
			Row:       e.Row,
			Reference: e.Reference,
			Message:   e.Message,
		})
	}

	return &exportImportErrors.Request{
		StaffID: staffID,
		Errors:  importErrors,
	}
}
