package update_vehicle_group

import (
	"context"

	"github.com/m04kA/SMC-FleetService/internal/service/groups/models"
)

// GroupService интерфейс сервиса групп автопарка
type GroupService interface {
	Update(ctx context.Context, id int64, req *models.UpdateGroupRequest) (*models.GroupResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
