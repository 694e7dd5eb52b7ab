package update_vehicle_group

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FleetService/internal/api/handlers"
	"github.com/m04kA/SMC-FleetService/internal/api/middleware"
	"github.com/m04kA/SMC-FleetService/internal/service/groups"
)

const (
	msgInvalidGroupID     = "некорректный ID группы"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные группы"
	msgNotFound           = "группа автопарка не найдена"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
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

// Handle PUT /api/v1/fleet/vehicle-groups/{groupId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем groupId из URL
	vars := mux.Vars(r)
	groupIDStr := vars["groupId"]

	groupID, err := strconv.ParseInt(groupIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /fleet/vehicle-groups/{id} - Invalid group ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGroupID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /fleet/vehicle-groups/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req UpdateGroupRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /fleet/vehicle-groups/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Обновляем группу (сервис сам проверит права доступа)
	result, err := h.service.Update(r.Context(), groupID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, groups.ErrGroupNotFound):
			h.logger.Warn("PUT /fleet/vehicle-groups/{id} - Group not found: group_id=%d", groupID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, groups.ErrAccessDenied):
			h.logger.Warn("PUT /fleet/vehicle-groups/{id} - Access denied: group_id=%d, user_id=%d", groupID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, groups.ErrInvalidInput):
			h.logger.Warn("PUT /fleet/vehicle-groups/{id} - Invalid data: group_id=%d, error=%v", groupID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /fleet/vehicle-groups/{id} - Failed to update group: group_id=%d, error=%v",
				groupID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /fleet/vehicle-groups/{id} - Group updated successfully: group_id=%d, user_id=%d",
		groupID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
