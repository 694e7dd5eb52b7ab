package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-FleetService/internal/domain"
)

var (
	// ErrEmptyName возвращается при пустом названии группы
	ErrEmptyName = errors.New("group name is required")

	// ErrNegativeRate возвращается при отрицательном тарифе
	ErrNegativeRate = errors.New("daily rate must be non-negative")
)

// Request модели

// CreateGroupRequest запрос на создание группы автопарка
type CreateGroupRequest struct {
	StaffID int64 `json:"staffId"`

	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	DailyRate   float64 `json:"dailyRate"`
}

// ToDomainGroup конвертирует запрос в domain модель с валидацией
func (r *CreateGroupRequest) ToDomainGroup() (*domain.VehicleGroup, error) {
	if r.Name == "" {
		return nil, ErrEmptyName
	}
	if r.DailyRate < 0 {
		return nil, ErrNegativeRate
	}

	return &domain.VehicleGroup{
		Name:        r.Name,
		Description: r.Description,
		DailyRate:   r.DailyRate,
	}, nil
}

// UpdateGroupRequest запрос на обновление группы
// Заполненные поля заменяют текущие значения, nil поля не трогаются
type UpdateGroupRequest struct {
	StaffID int64 `json:"staffId"`

	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	DailyRate   *float64 `json:"dailyRate,omitempty"`
}

// ApplyTo накладывает заполненные поля запроса на группу
func (r *UpdateGroupRequest) ApplyTo(g *domain.VehicleGroup) error {
	if r.Name != nil {
		if *r.Name == "" {
			return ErrEmptyName
		}
		g.Name = *r.Name
	}
	if r.Description != nil {
		g.Description = r.Description
	}
	if r.DailyRate != nil {
		if *r.DailyRate < 0 {
			return ErrNegativeRate
		}
		g.DailyRate = *r.DailyRate
	}
	return nil
}

// Response модели

// GroupResponse ответ с данными группы
type GroupResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	DailyRate   float64 `json:"dailyRate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GroupListResponse ответ со списком групп
type GroupListResponse struct {
	Groups []GroupResponse `json:"groups"`
}

// Методы конвертации

// FromDomainGroup конвертирует domain модель в DTO
func FromDomainGroup(g *domain.VehicleGroup) *GroupResponse {
	if g == nil {
		return nil
	}

	return &GroupResponse{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		DailyRate:   g.DailyRate,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// FromDomainGroupList конвертирует список domain моделей в DTO
func FromDomainGroupList(groups []*domain.VehicleGroup) *GroupListResponse {
	if groups == nil {
		return &GroupListResponse{
			Groups: []GroupResponse{},
		}
	}

	resp := &GroupListResponse{
		Groups: make([]GroupResponse, len(groups)),
	}

	for i, group := range groups {
		if groupResp := FromDomainGroup(group); groupResp != nil {
			resp.Groups[i] = *groupResp
		}
	}

	return resp
}
