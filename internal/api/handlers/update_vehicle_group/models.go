package update_vehicle_group

import (
	"github.com/m04kA/SMC-FleetService/internal/service/groups/models"
)

// UpdateGroupRequest HTTP запрос на обновление группы автопарка.
// Заполненные поля заменяют текущие значения, nil поля не трогаются.
type UpdateGroupRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	DailyRate   *float64 `json:"dailyRate,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *UpdateGroupRequest) ToServiceRequest(staffID int64) *models.UpdateGroupRequest {
	return &models.UpdateGroupRequest{
		StaffID:     staffID,
		Name:        r.Name,
		Description: r.Description,
		DailyRate:   r.DailyRate,
	}
}
