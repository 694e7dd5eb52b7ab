package list_vehicle_groups

import (
	"context"

	"github.com/m04kA/SMC-FleetService/internal/service/groups/models"
)

// GroupService интерфейс сервиса групп автопарка
type GroupService interface {
	List(ctx context.Context, staffID int64) (*models.GroupListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
