package domain

import "time"

// VehicleGroup represents a pricing group of fleet vehicles (класс автомобилей)
type VehicleGroup struct {
	ID          int64
	Name        string
	Description *string
	DailyRate   float64 // Базовый тариф аренды за сутки

	CreatedAt time.Time
	UpdatedAt time.Time
}
