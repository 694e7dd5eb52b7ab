package delete_vehicle

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-FleetService/internal/api/handlers"
	"github.com/m04kA/SMC-FleetService/internal/api/middleware"
	"github.com/m04kA/SMC-FleetService/internal/service/vehicles"
)

const (
	msgInvalidVehicleID  = "некорректный ID автомобиля"
	msgNotFound          = "автомобиль не найден"
	msgHasActiveBookings = "по автомобилю есть активные брони"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgForbidden         = "доступ запрещен"
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

// Handle DELETE /api/v1/fleet/vehicles/{vehicleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем vehicleId из URL
	vars := mux.Vars(r)
	vehicleIDStr := vars["vehicleId"]

	vehicleID, err := strconv.ParseInt(vehicleIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /fleet/vehicles/{id} - Invalid vehicle ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVehicleID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /fleet/vehicles/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Удаляем автомобиль (сервис сам проверит права доступа)
	err = h.service.Delete(r.Context(), vehicleID, userID)
	if err != nil {
		switch {
		case errors.Is(err, vehicles.ErrVehicleNotFound):
			h.logger.Warn("DELETE /fleet/vehicles/{id} - Vehicle not found: vehicle_id=%d", vehicleID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, vehicles.ErrVehicleHasActiveBookings):
			h.logger.Warn("DELETE /fleet/vehicles/{id} - Vehicle has active bookings: vehicle_id=%d", vehicleID)
			handlers.RespondError(w, http.StatusConflict, msgHasActiveBookings)

		case errors.Is(err, vehicles.ErrAccessDenied):
			h.logger.Warn("DELETE /fleet/vehicles/{id} - Access denied: vehicle_id=%d, user_id=%d", vehicleID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /fleet/vehicles/{id} - Failed to delete vehicle: vehicle_id=%d, error=%v",
				vehicleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /fleet/vehicles/{id} - Vehicle deleted successfully: vehicle_id=%d, user_id=%d",
		vehicleID, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
