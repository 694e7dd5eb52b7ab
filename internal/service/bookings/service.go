package bookings

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-FleetService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FleetService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-FleetService/internal/service/bookings/models"
)

// Service сервис для работы с бронями автопарка
type Service struct {
	bookingRepo BookingRepository
	staffClient StaffServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса броней
func NewService(
	bookingRepo BookingRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		staffClient: staffClient,
		logger:      logger,
	}
}

// Create создает бронь вручную (минуя импорт)
// Доступно сотрудникам с правом управления бронями
func (s *Service) Create(ctx context.Context, req *models.CreateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Create: creating booking reference=%s by staff=%d", req.Reference, req.StaffID)

	if err := s.checkStaffAccess(ctx, req.StaffID, staffservice.PermissionManageBookings); err != nil {
		return nil, err
	}

	booking, err := req.ToDomainBooking()
	if err != nil {
		s.logger.Warn("Create: invalid booking payload reference=%s: %v", req.Reference, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.bookingRepo.Create(ctx, booking)
	if err != nil {
		s.logger.Error("Create: repository error for reference=%s: %v", req.Reference, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created booking id=%d reference=%s", created.ID, created.Reference)
	return models.FromDomainBooking(created), nil
}

// GetByID получает бронь по ID
func (s *Service) GetByID(ctx context.Context, id int64, staffID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for staff=%d", id, staffID)

	if err := s.checkStaffAccess(ctx, staffID, staffservice.PermissionManageBookings); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает брони с фильтрацией по статусу, госномеру, номеру и периоду выдачи
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings for staff=%d", req.StaffID)

	if err := s.checkStaffAccess(ctx, req.StaffID, staffservice.PermissionManageBookings); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings for staff=%d", len(bookings), req.StaffID)
	return models.FromDomainBookingList(bookings), nil
}

// Update обновляет бронь
// Заполненные поля запроса заменяют текущие значения (get -> merge -> update)
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d by staff=%d", id, req.StaffID)

	if err := s.checkStaffAccess(ctx, req.StaffID, staffservice.PermissionManageBookings); err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Update: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Update: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := req.ApplyTo(booking); err != nil {
		s.logger.Warn("Update: invalid payload for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.bookingRepo.Update(ctx, id, booking)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Update: booking id=%d disappeared during update", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Update: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated booking id=%d", id)
	return models.FromDomainBooking(updated), nil
}

// Delete удаляет бронь
// Импортированную историю можно чистить, поэтому удаление физическое
func (s *Service) Delete(ctx context.Context, id int64, staffID int64) error {
	s.logger.Info("Delete: deleting booking id=%d by staff=%d", id, staffID)

	if err := s.checkStaffAccess(ctx, staffID, staffservice.PermissionManageBookings); err != nil {
		return err
	}

	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", id)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", id)
	return nil
}

// checkStaffAccess проверяет наличие права доступа у сотрудника
// Недоступность StaffService приводит к отказу, а не к пропуску проверки
func (s *Service) checkStaffAccess(ctx context.Context, staffID int64, permission string) error {
	member, err := s.staffClient.GetStaffMember(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffservice.ErrStaffMemberNotFound) {
			s.logger.Warn("checkStaffAccess: staff=%d not found", staffID)
			return ErrAccessDenied
		}
		s.logger.Error("checkStaffAccess: failed to get staff member id=%d: %v", staffID, err)
		return fmt.Errorf("%w: checkStaffAccess - failed to get staff member: %v", ErrInternal, err)
	}

	if !member.HasPermission(permission) {
		s.logger.Warn("checkStaffAccess: staff=%d lacks permission %s", staffID, permission)
		return ErrAccessDenied
	}

	return nil
}
