package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-FleetService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidDateRange возвращается, когда дата возврата раньше даты выдачи
	ErrInvalidDateRange = errors.New("dropoff date is before pickup date")

	// ErrAmbiguousDepositReturn возвращается, когда заданы и дата, и пометка возврата залога
	ErrAmbiguousDepositReturn = errors.New("deposit return: date and note are mutually exclusive")
)

// Request модели

// CreateBookingRequest запрос на создание брони
type CreateBookingRequest struct {
	StaffID int64 `json:"staffId"`

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

// ToDomainBooking конвертирует запрос в domain модель с валидацией
func (r *CreateBookingRequest) ToDomainBooking() (*domain.Booking, error) {
	confirmedAt, err := time.Parse(domain.DateFormat, r.ConfirmedAt)
	if err != nil {
		return nil, ErrInvalidDate
	}
	pickupDate, err := time.Parse(domain.DateFormat, r.PickupDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	dropoffDate, err := time.Parse(domain.DateFormat, r.DropoffDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if dropoffDate.Before(pickupDate) {
		return nil, ErrInvalidDateRange
	}

	status := domain.StatusConfirmed
	if r.Status != "" {
		status, err = ToDomainBookingStatus(r.Status)
		if err != nil {
			return nil, err
		}
	}

	depositReturn, err := toDepositReturn(r.DepositReturnDate, r.DepositReturnNote)
	if err != nil {
		return nil, err
	}

	return &domain.Booking{
		Reference:       r.Reference,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		LicensePlate:    r.LicensePlate,
		ConfirmedAt:     confirmedAt,
		PickupDate:      pickupDate,
		PickupLocation:  r.PickupLocation,
		DropoffDate:     dropoffDate,
		DropoffLocation: r.DropoffLocation,
		Price:           r.Price,
		Deposit:         r.Deposit,
		DepositReturn:   depositReturn,
		Status:          status,
		Notes:           r.Notes,
	}, nil
}

// UpdateBookingRequest запрос на обновление брони
// Заполненные поля заменяют текущие значения, nil поля не трогаются
type UpdateBookingRequest struct {
	StaffID int64 `json:"staffId"`

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

// ApplyTo накладывает заполненные поля запроса на бронь
func (r *UpdateBookingRequest) ApplyTo(b *domain.Booking) error {
	if r.Reference != nil {
		b.Reference = *r.Reference
	}
	if r.CustomerName != nil {
		b.CustomerName = *r.CustomerName
	}
	if r.CustomerPhone != nil {
		b.CustomerPhone = r.CustomerPhone
	}
	if r.LicensePlate != nil {
		b.LicensePlate = *r.LicensePlate
	}

	if r.ConfirmedAt != nil {
		confirmedAt, err := time.Parse(domain.DateFormat, *r.ConfirmedAt)
		if err != nil {
			return ErrInvalidDate
		}
		b.ConfirmedAt = confirmedAt
	}
	if r.PickupDate != nil {
		pickupDate, err := time.Parse(domain.DateFormat, *r.PickupDate)
		if err != nil {
			return ErrInvalidDate
		}
		b.PickupDate = pickupDate
	}
	if r.PickupLocation != nil {
		b.PickupLocation = *r.PickupLocation
	}
	if r.DropoffDate != nil {
		dropoffDate, err := time.Parse(domain.DateFormat, *r.DropoffDate)
		if err != nil {
			return ErrInvalidDate
		}
		b.DropoffDate = dropoffDate
	}
	if r.DropoffLocation != nil {
		b.DropoffLocation = *r.DropoffLocation
	}
	if b.DropoffDate.Before(b.PickupDate) {
		return ErrInvalidDateRange
	}

	if r.Price != nil {
		b.Price = *r.Price
	}
	if r.Deposit != nil {
		b.Deposit = *r.Deposit
	}

	if r.DepositReturnDate != nil || r.DepositReturnNote != nil {
		depositReturn, err := toDepositReturn(r.DepositReturnDate, r.DepositReturnNote)
		if err != nil {
			return err
		}
		b.DepositReturn = depositReturn
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return err
		}
		b.Status = status
	}
	if r.Notes != nil {
		b.Notes = r.Notes
	}

	return nil
}

// ListBookingsRequest запрос на получение списка броней
type ListBookingsRequest struct {
	StaffID      int64   `json:"staffId"`
	Status       *string `json:"status,omitempty"`       // Фильтр по статусу (опционально)
	LicensePlate *string `json:"licensePlate,omitempty"` // Фильтр по госномеру (опционально)
	Reference    *string `json:"reference,omitempty"`    // Фильтр по номеру брони (опционально)
	PickupFrom   *string `json:"pickupFrom,omitempty"`   // Начало периода выдачи (опционально)
	PickupTo     *string `json:"pickupTo,omitempty"`     // Конец периода выдачи (опционально)
	Limit        uint64  `json:"limit,omitempty"`
	Offset       uint64  `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		LicensePlate: r.LicensePlate,
		Reference:    r.Reference,
		Limit:        r.Limit,
		Offset:       r.Offset,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	if r.PickupFrom != nil {
		from, err := time.Parse(domain.DateFormat, *r.PickupFrom)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.PickupFrom = &from
	}
	if r.PickupTo != nil {
		to, err := time.Parse(domain.DateFormat, *r.PickupTo)
		if err != nil {
			return filter, ErrInvalidDate
		}
		filter.PickupTo = &to
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными брони
type BookingResponse struct {
	ID        int64  `json:"id"`
	Reference string `json:"reference"`

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

	DepositReturnDate  *string `json:"depositReturnDate,omitempty"`
	DepositReturnNote  *string `json:"depositReturnNote,omitempty"`
	DepositOutstanding bool    `json:"depositOutstanding"`

	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком броней
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		CustomerName:       b.CustomerName,
		CustomerPhone:      b.CustomerPhone,
		LicensePlate:       b.LicensePlate,
		ConfirmedAt:        b.ConfirmedAt.Format(domain.DateFormat),
		PickupDate:         b.PickupDate.Format(domain.DateFormat),
		PickupLocation:     b.PickupLocation,
		DropoffDate:        b.DropoffDate.Format(domain.DateFormat),
		DropoffLocation:    b.DropoffLocation,
		Price:              b.Price,
		Deposit:            b.Deposit,
		DepositOutstanding: b.DepositOutstanding(),
		Status:             string(b.Status),
		Notes:              b.Notes,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.DepositReturn.Date != nil {
		dateStr := b.DepositReturn.Date.Format(domain.DateFormat)
		resp.DepositReturnDate = &dateStr
	}
	if b.DepositReturn.Note != nil {
		resp.DepositReturnNote = b.DepositReturn.Note
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.StatusConfirmed,
		domain.StatusActive,
		domain.StatusCompleted,
		domain.StatusCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}

// toDepositReturn собирает значение возврата залога из пары опциональных полей
func toDepositReturn(date *string, note *string) (domain.DepositReturn, error) {
	if date != nil && note != nil {
		return domain.DepositReturn{}, ErrAmbiguousDepositReturn
	}
	if date != nil {
		parsed, err := time.Parse(domain.DateFormat, *date)
		if err != nil {
			return domain.DepositReturn{}, ErrInvalidDate
		}
		return domain.DepositReturnedOn(parsed), nil
	}
	if note != nil && *note != "" {
		return domain.DepositReturnNote(*note), nil
	}
	return domain.DepositReturn{}, nil
}
