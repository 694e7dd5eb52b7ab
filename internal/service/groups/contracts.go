package groups

import (
	"context"

	"github.com/m04kA/SMC-FleetService/internal/domain"
	"github.com/m04kA/SMC-FleetService/internal/integrations/staffservice"
)

// GroupRepository интерфейс репозитория групп автопарка
type GroupRepository interface {
	Create(ctx context.Context, group *domain.VehicleGroup) (*domain.VehicleGroup, error)
	GetByID(ctx context.Context, id int64) (*domain.VehicleGroup, error)
	List(ctx context.Context) ([]*domain.VehicleGroup, error)
	Update(ctx context.Context, id int64, group *domain.VehicleGroup) (*domain.VehicleGroup, error)
	Delete(ctx context.Context, id int64) error
}

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	CountByGroupID(ctx context.Context, groupID int64) (int64, error)
}

// StaffServiceClient интерфейс клиента для StaffService
type StaffServiceClient interface {
	GetStaffMember(ctx context.Context, staffID int64) (*staffservice.StaffMember, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
