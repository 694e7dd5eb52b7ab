package delete_vehicle_group

import (
	"context"
)

// GroupService интерфейс сервиса групп автопарка
type GroupService interface {
	Delete(ctx context.Context, groupID int64, staffID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
