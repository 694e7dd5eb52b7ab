package update_vehicle

import (
	"github.com/m04kA/SMC-FleetService/internal/service/vehicles/models"
)

// UpdateVehicleRequest HTTP request model
// Заполненные поля заменяют текущие значения, отсутствующие не трогаются.
type UpdateVehicleRequest struct {
	LicensePlate *string `json:"licensePlate,omitempty"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
	Year         *int    `json:"year,omitempty"`
	GroupID      *int64  `json:"groupId,omitempty"`
	Status       *string `json:"status,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateVehicleRequest) ToServiceRequest(staffID int64) *models.UpdateVehicleRequest {
	return &models.UpdateVehicleRequest{
		StaffID:      staffID,
		LicensePlate: r.LicensePlate,
		Brand:        r.Brand,
		Model:        r.Model,
		Year:         r.Year,
		GroupID:      r.GroupID,
		Status:       r.Status,
		Notes:        r.Notes,
	}
}
