package vehicles

import (
	"context"

	"github.com/m04kA/SMC-FleetService/internal/domain"
	"github.com/m04kA/SMC-FleetService/internal/integrations/staffservice"
)

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	GetByLicensePlate(ctx context.Context, licensePlate string) (*domain.Vehicle, error)
	List(ctx context.Context, filter domain.VehiclesFilter) ([]*domain.Vehicle, error)
	Update(ctx context.Context, id int64, vehicle *domain.Vehicle) (*domain.Vehicle, error)
	Delete(ctx context.Context, id int64) error
}

// GroupRepository интерфейс репозитория групп автопарка
type GroupRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.VehicleGroup, error)
}

// BookingRepository интерфейс репозитория броней
type BookingRepository interface {
	CountActiveByLicensePlate(ctx context.Context, licensePlate string) (int64, error)
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
