package list_vehicle_groups

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FleetService/internal/api/handlers"
	"github.com/m04kA/SMC-FleetService/internal/api/middleware"
	"github.com/m04kA/SMC-FleetService/internal/service/groups"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
)

type Handler struct {
	service GroupService
	logger  Logger
}

func NewHandler(service GroupService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/fleet/vehicle-groups
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /fleet/vehicle-groups - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем список групп (сервис сам проверит права доступа)
	result, err := h.service.List(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, groups.ErrAccessDenied):
			h.logger.Warn("GET /fleet/vehicle-groups - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /fleet/vehicle-groups - Failed to list groups: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /fleet/vehicle-groups - Groups listed successfully: count=%d, user_id=%d",
		len(result.Groups), userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
