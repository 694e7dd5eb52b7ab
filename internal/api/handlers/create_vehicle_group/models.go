package create_vehicle_group

import (
	"github.com/m04kA/SMC-FleetService/internal/service/groups/models"
)

// CreateGroupRequest HTTP запрос на создание группы автопарка.
// ID сотрудника в тело не входит: его приносит заголовок X-User-ID.
type CreateGroupRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	DailyRate   float64 `json:"dailyRate"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *CreateGroupRequest) ToServiceRequest(staffID int64) *models.CreateGroupRequest {
	return &models.CreateGroupRequest{
		StaffID:     staffID,
		Name:        r.Name,
		Description: r.Description,
		DailyRate:   r.DailyRate,
	}
}
