package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-FleetService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе автомобиля
	ErrInvalidStatus = errors.New("invalid vehicle status")

	// ErrInvalidYear возвращается при некорректном годе выпуска
	ErrInvalidYear = errors.New("invalid vehicle year")

	// ErrEmptyLicensePlate возвращается при пустом госномере
	ErrEmptyLicensePlate = errors.New("license plate is required")
)

// Request модели

// CreateVehicleRequest запрос на добавление автомобиля в парк
type CreateVehicleRequest struct {
	StaffID int64 `json:"staffId"`

	LicensePlate string  `json:"licensePlate"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	GroupID      *int64  `json:"groupId,omitempty"`
	Status       string  `json:"status,omitempty"` // Пустая строка - available
	Notes        *string `json:"notes,omitempty"`
}

// ToDomainVehicle конвертирует запрос в domain модель с валидацией
func (r *CreateVehicleRequest) ToDomainVehicle() (*domain.Vehicle, error) {
	if r.LicensePlate == "" {
		return nil, ErrEmptyLicensePlate
	}
	if r.Year < domain.MinVehicleYear || r.Year > time.Now().Year()+1 {
		return nil, ErrInvalidYear
	}

	status := domain.VehicleStatusAvailable
	if r.Status != "" {
		parsed, err := ToDomainVehicleStatus(r.Status)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	return &domain.Vehicle{
		LicensePlate: r.LicensePlate,
		Brand:        r.Brand,
		Model:        r.Model,
		Year:         r.Year,
		GroupID:      r.GroupID,
		Status:       status,
		Notes:        r.Notes,
	}, nil
}

// UpdateVehicleRequest запрос на обновление автомобиля
// Заполненные поля заменяют текущие значения, nil поля не трогаются
type UpdateVehicleRequest struct {
	StaffID int64 `json:"staffId"`

	LicensePlate *string `json:"licensePlate,omitempty"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
	Year         *int    `json:"year,omitempty"`
	GroupID      *int64  `json:"groupId,omitempty"`
	Status       *string `json:"status,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// ApplyTo накладывает заполненные поля запроса на автомобиль
func (r *UpdateVehicleRequest) ApplyTo(v *domain.Vehicle) error {
	if r.LicensePlate != nil {
		if *r.LicensePlate == "" {
			return ErrEmptyLicensePlate
		}
		v.LicensePlate = *r.LicensePlate
	}
	if r.Brand != nil {
		v.Brand = *r.Brand
	}
	if r.Model != nil {
		v.Model = *r.Model
	}
	if r.Year != nil {
		if *r.Year < domain.MinVehicleYear || *r.Year > time.Now().Year()+1 {
			return ErrInvalidYear
		}
		v.Year = *r.Year
	}
	if r.GroupID != nil {
		v.GroupID = r.GroupID
	}
	if r.Status != nil {
		status, err := ToDomainVehicleStatus(*r.Status)
		if err != nil {
			return err
		}
		v.Status = status
	}
	if r.Notes != nil {
		v.Notes = r.Notes
	}
	return nil
}

// ListVehiclesRequest запрос на получение списка автомобилей
type ListVehiclesRequest struct {
	StaffID int64   `json:"staffId"`
	GroupID *int64  `json:"groupId,omitempty"` // Фильтр по группе (опционально)
	Status  *string `json:"status,omitempty"`  // Фильтр по статусу (опционально)
	Limit   uint64  `json:"limit,omitempty"`
	Offset  uint64  `json:"offset,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListVehiclesRequest) ToDomainFilter() (domain.VehiclesFilter, error) {
	filter := domain.VehiclesFilter{
		GroupID: r.GroupID,
		Limit:   r.Limit,
		Offset:  r.Offset,
	}

	if r.Status != nil {
		status, err := ToDomainVehicleStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// VehicleResponse ответ с данными автомобиля
type VehicleResponse struct {
	ID           int64   `json:"id"`
	LicensePlate string  `json:"licensePlate"`
	Brand        string  `json:"brand"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	GroupID      *int64  `json:"groupId,omitempty"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// VehicleListResponse ответ со списком автомобилей
type VehicleListResponse struct {
	Vehicles []VehicleResponse `json:"vehicles"`
}

// Методы конвертации

// FromDomainVehicle конвертирует domain модель в DTO
func FromDomainVehicle(v *domain.Vehicle) *VehicleResponse {
	if v == nil {
		return nil
	}

	return &VehicleResponse{
		ID:           v.ID,
		LicensePlate: v.LicensePlate,
		Brand:        v.Brand,
		Model:        v.Model,
		Year:         v.Year,
		GroupID:      v.GroupID,
		Status:       string(v.Status),
		Notes:        v.Notes,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

// FromDomainVehicleList конвертирует список domain моделей в DTO
func FromDomainVehicleList(vehicles []*domain.Vehicle) *VehicleListResponse {
	if vehicles == nil {
		return &VehicleListResponse{
			Vehicles: []VehicleResponse{},
		}
	}

	resp := &VehicleListResponse{
		Vehicles: make([]VehicleResponse, len(vehicles)),
	}

	for i, vehicle := range vehicles {
		if vehicleResp := FromDomainVehicle(vehicle); vehicleResp != nil {
			resp.Vehicles[i] = *vehicleResp
		}
	}

	return resp
}

// ToDomainVehicleStatus конвертирует строку в domain.VehicleStatus с валидацией
func ToDomainVehicleStatus(status string) (domain.VehicleStatus, error) {
	s := domain.VehicleStatus(status)

	validStatuses := []domain.VehicleStatus{
		domain.VehicleStatusAvailable,
		domain.VehicleStatusInService,
		domain.VehicleStatusRetired,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
