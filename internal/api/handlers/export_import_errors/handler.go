package export_import_errors

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FleetService/internal/api/handlers"
	"github.com/m04kA/SMC-FleetService/internal/api/middleware"
	exportImportErrors "github.com/m04kA/SMC-FleetService/internal/usecase/export_import_errors"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidErrors      = "некорректный список ошибок"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	useCase ExportImportErrorsUseCase
	logger  Logger
}

func NewHandler(useCase ExportImportErrorsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/fleet/bookings/import/errors/export
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /fleet/bookings/import/errors/export - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req ExportErrorsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /fleet/bookings/import/errors/export - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, exportImportErrors.ErrAccessDenied):
			h.logger.Warn("POST /fleet/bookings/import/errors/export - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, exportImportErrors.ErrInvalidInput):
			h.logger.Warn("POST /fleet/bookings/import/errors/export - Invalid errors list: %v", err)
			handlers.RespondBadRequest(w, msgInvalidErrors)

		default:
			h.logger.Error("POST /fleet/bookings/import/errors/export - Failed to build report: user_id=%d, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /fleet/bookings/import/errors/export - Report sent: user_id=%d, file=%s, errors=%d",
		userID, result.FileName, len(req.Errors))
	handlers.RespondXLSX(w, result.FileName, result.Data)
}
