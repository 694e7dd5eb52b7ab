package delete_vehicle

import (
	"context"
)

// VehicleService интерфейс сервиса автопарка
type VehicleService interface {
	Delete(ctx context.Context, vehicleID int64, staffID int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}
