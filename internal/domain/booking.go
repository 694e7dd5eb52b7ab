package domain

import "time"

// BookingStatus represents the status of a rental booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a vehicle rental booking in the fleet
type Booking struct {
	ID        int64
	Reference string // Номер брони (не уникальный: допускаются повторные импорты истории)

	CustomerName  string
	CustomerPhone *string

	LicensePlate string // Госномер автомобиля (связь с парком по номеру, не по ID)

	ConfirmedAt     time.Time
	PickupDate      time.Time
	PickupLocation  string
	DropoffDate     time.Time
	DropoffLocation string

	Price         float64
	Deposit       float64
	DepositReturn DepositReturn

	Status BookingStatus
	Notes  *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies a vehicle
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed || b.Status == StatusActive
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsFinished returns true if the booking reached a terminal state
func (b *Booking) IsFinished() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// DepositOutstanding returns true if a deposit was taken and not returned yet
func (b *Booking) DepositOutstanding() bool {
	return b.Deposit > 0 && b.DepositReturn.IsZero()
}

// BookingsFilter фильтр для выборки броней в админке
type BookingsFilter struct {
	Status       *BookingStatus // Фильтр по статусу (опционально)
	LicensePlate *string        // Фильтр по госномеру (опционально)
	Reference    *string        // Фильтр по номеру брони (опционально)
	PickupFrom   *time.Time     // Начало периода выдачи (опционально)
	PickupTo     *time.Time     // Конец периода выдачи (опционально)
	Limit        uint64         // 0 - без ограничения
	Offset       uint64
}
