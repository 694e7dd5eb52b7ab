package create_vehicle

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-FleetService/internal/api/handlers"
	"github.com/m04kA/SMC-FleetService/internal/api/middleware"
	"github.com/m04kA/SMC-FleetService/internal/service/vehicles"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные автомобиля"
	msgAlreadyExists      = "автомобиль с таким госномером уже есть в парке"
	msgGroupNotFound      = "группа автопарка не найдена"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service VehicleService
	logger  Logger
}

func NewHandler(service VehicleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/fleet/vehicles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /fleet/vehicles - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req CreateVehicleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /fleet/vehicles - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Добавляем автомобиль (сервис сам проверит права доступа)
	result, err := h.service.Create(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, vehicles.ErrVehicleAlreadyExists):
			h.logger.Warn("POST /fleet/vehicles - Vehicle already exists: license_plate=%s", req.LicensePlate)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyExists)

		case errors.Is(err, vehicles.ErrGroupNotFound):
			h.logger.Warn("POST /fleet/vehicles - Group not found: group_id=%v", req.GroupID)
			handlers.RespondNotFound(w, msgGroupNotFound)

		case errors.Is(err, vehicles.ErrAccessDenied):
			h.logger.Warn("POST /fleet/vehicles - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, vehicles.ErrInvalidInput):
			h.logger.Warn("POST /fleet/vehicles - Invalid data: %v", err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /fleet/vehicles - Failed to create vehicle: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /fleet/vehicles - Vehicle created successfully: vehicle_id=%d, license_plate=%s, user_id=%d",
		result.ID, result.LicensePlate, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
