package get_import_template

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FleetService/internal/api/handlers"
	"github.com/m04kA/SMC-FleetService/internal/api/middleware"
	getImportTemplate "github.com/m04kA/SMC-FleetService/internal/usecase/get_import_template"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	useCase GetImportTemplateUseCase
	logger  Logger
}

func NewHandler(useCase GetImportTemplateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/fleet/bookings/import/template
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /fleet/bookings/import/template - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getImportTemplate.Request{StaffID: userID})
	if err != nil {
		switch {
		case errors.Is(err, getImportTemplate.ErrAccessDenied):
			h.logger.Warn("GET /fleet/bookings/import/template - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /fleet/bookings/import/template - Failed to build template: user_id=%d, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /fleet/bookings/import/template - Template sent: user_id=%d, file=%s",
		userID, result.FileName)
	handlers.RespondXLSX(w, result.FileName, result.Data)
}
