package update_booking

import (
	"github.com/m04kA/SMC-FleetService/internal/service/bookings/models"
)

// UpdateBookingRequest HTTP request model
// Заполненные поля заменяют текущие значения, отсутствующие не трогаются.
type UpdateBookingRequest struct {
	Reference     *string `json:"reference,omitempty"`
	CustomerName  *string `json:"customerName,omitempty"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	LicensePlate  *string `json:"licensePlate,omitempty"`

	ConfirmedAt     *string `json:"confirmedAt,omitempty"`
	PickupDate      *string `json:"pickupDate,omitempty"`
	PickupLocation  *string `json:"pickupLocation,omitempty"`
	DropoffDate     *string `json:"dropoffDate,omitempty"`
	DropoffLocation *string `json:"dropoffLocation,omitempty"`

	Price   *float64 `json:"price,omitempty"`
	Deposit *float64 `json:"deposit,omitempty"`

	DepositReturnDate *string `json:"depositReturnDate,omitempty"`
	DepositReturnNote *string `json:"depositReturnNote,omitempty"`

	Status *string `json:"status,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateBookingRequest) ToServiceRequest(staffID int64) *models.UpdateBookingRequest {
	return &models.UpdateBookingRequest{
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
