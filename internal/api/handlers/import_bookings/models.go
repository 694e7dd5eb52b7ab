package import_bookings

import (
	importBookings "github.com/m04kA/SMC-FleetService/internal/usecase/import_bookings"
)

// ImportResultResponse HTTP response model
type ImportResultResponse struct {
	SuccessCount int                   `json:"successCount"`
	FailedCount  int                   `json:"failedCount"`
	Errors       []ImportErrorResponse `json:"errors"`
}

// ImportErrorResponse одна ошибка импорта в ответе
type ImportErrorResponse struct {
	Row       int    `json:"row"`
	Reference string `json:"reference"`
	Message   string `json:"message"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *importBookings.Response) *ImportResultResponse {
	// Пустой список сериализуется как [], а не null
	importErrors := make([]ImportErrorResponse, 0, len(resp.Errors))
	for _, e := range resp.Errors {
		importErrors = append(importErrors, ImportErrorResponse{
			Row:       e.Row,
			Reference: e.Reference,
			Message:   e.Message,
		})
	}

	return &ImportResultResponse{
		SuccessCount: resp.SuccessCount,
		FailedCount:  resp.FailedCount,
		Errors:       importErrors,
	}
}
