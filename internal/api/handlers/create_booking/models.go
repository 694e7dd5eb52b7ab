package create_booking

import (
	"github.com/m04kA/SMC-FleetService/internal/service/bookings/models"
)

// CreateBookingRequest HTTP request model
// ID сотрудника в тело не входит: его приносит заголовок X-User-ID.
type CreateBookingRequest struct {
	Reference     string  `json:"reference"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	LicensePlate  string  `json:"licensePlate"`

	ConfirmedAt     string `json:"confirmedAt"` // "2026-03-05"
	PickupDate      string `json:"pickupDate"`
	PickupLocation  string `json:"pickupLocation"`
	DropoffDate     string `json:"dropoffDate"`
	DropoffLocation string `json:"dropoffLocation"`

	Price   float64 `json:"price"`
	Deposit float64 `json:"deposit"`

	DepositReturnDate *string `json:"depositReturnDate,omitempty"` // "2026-03-12"
	DepositReturnNote *string `json:"depositReturnNote,omitempty"`

	Status string  `json:"status,omitempty"` // Пустая строка - confirmed
	Notes  *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CreateBookingRequest) ToServiceRequest(staffID int64) *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		StaffID:           staffID,
		Reference:         r.Reference,
		CustomerName:      r.CustomerName,
		CustomerPhone:     r.CustomerPhone,
		LicensePlate:      r.LicensePlate,
		ConfirmedAt:       r.ConfirmedAt,
		PickupDate:        r.PickupDate,
		PickupLocation:    r.PickupLocation,
		DropoffDate:       r.DropoffDate,
		DropoffLocation:   r.DropoffLocation,
		Price:             r.Price,
		Deposit:           r.Deposit,
		DepositReturnDate: r.DepositReturnDate,
		DepositReturnNote: r.DepositReturnNote,
		Status:            r.Status,
		Notes:             r.Notes,
	}
}
