package domain

import "time"

// VehicleStatus represents the operational status of a fleet vehicle
type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "available"
	VehicleStatusInService VehicleStatus = "in_service"
	VehicleStatusRetired   VehicleStatus = "retired"
)

// Vehicle represents a car in the rental fleet
type Vehicle struct {
	ID           int64
	LicensePlate string // Госномер, уникальный в пределах парка
	Brand        string
	Model        string
	Year         int
	GroupID      *int64 // Группа автопарка (nil - вне групп)
	Status       VehicleStatus
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOperational returns true if the vehicle can still be booked
func (v *Vehicle) IsOperational() bool {
	return v.Status != VehicleStatusRetired
}

// VehiclesFilter фильтр для выборки автомобилей парка
type VehiclesFilter struct {
	GroupID *int64         // Фильтр по группе (опционально)
	Status  *VehicleStatus // Фильтр по статусу (опционально)
	Limit   uint64         // 0 - без ограничения
	Offset  uint64
}
