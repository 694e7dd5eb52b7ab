package create_vehicle

import (
	"github.com/m04kA/SMC-FleetService/internal/service/vehicles/models"
)

// CreateVehicleRequest HTTP request model
type CreateVehicleRequest struct {
	LicensePlate string  `json:"licensePlate"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	GroupID      *int64  `json:"groupId,omitempty"`
	Status       string  `json:"status,omitempty"` // Пустая строка - available
	Notes        *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateVehicleRequest) ToServiceRequest(staffID int64) *models.CreateVehicleRequest {
	return &models.CreateVehicleRequest{
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
