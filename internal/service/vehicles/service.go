package vehicles

import (
	"context"
	"errors"
	"fmt"

	vehicleRepo "github.com/m04kA/SMC-FleetService/internal/infra/storage/vehicle"
	groupRepo "github.com/m04kA/SMC-FleetService/internal/infra/storage/vehiclegroup"
	"github.com/m04kA/SMC-FleetService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-FleetService/internal/service/vehicles/models"
)

// Service сервис для работы с автомобилями парка
type Service struct {
	vehicleRepo VehicleRepository
	groupRepo   GroupRepository
	bookingRepo BookingRepository
	staffClient StaffServiceClient
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса автомобилей
func NewService(
	vehicleRepo VehicleRepository,
	groupRepo GroupRepository,
	bookingRepo BookingRepository,
	staffClient StaffServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		vehicleRepo: vehicleRepo,
		groupRepo:   groupRepo,
		bookingRepo: bookingRepo,
		staffClient: staffClient,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create добавляет автомобиль в парк
// Госномер обязан быть уникальным, группа (если указана) — существовать
func (s *Service) Create(ctx context.Context, req *models.CreateVehicleRequest) (*models.VehicleResponse, error) {
	s.logger.Info("Create: creating vehicle plate=%s by staff=%d", req.LicensePlate, req.StaffID)

	if err := s.checkStaffAccess(ctx, req.StaffID, staffservice.PermissionManageFleet); err != nil {
		return nil, err
	}

	vehicle, err := req.ToDomainVehicle()
	if err != nil {
		s.logger.Warn("Create: invalid vehicle payload plate=%s: %v", req.LicensePlate, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Проверяем уникальность госномера
	_, err = s.vehicleRepo.GetByLicensePlate(ctx, vehicle.LicensePlate)
	if err == nil {
		s.logger.Warn("Create: vehicle plate=%s already exists", vehicle.LicensePlate)
		return nil, ErrVehicleAlreadyExists
	}
	if !errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
		s.logger.Error("Create: repository error checking plate=%s: %v", vehicle.LicensePlate, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	if vehicle.GroupID != nil {
		if err := s.checkGroupExists(ctx, *vehicle.GroupID); err != nil {
			return nil, err
		}
	}

	created, err := s.vehicleRepo.Create(ctx, vehicle)
	if err != nil {
		s.logger.Error("Create: repository error for plate=%s: %v", vehicle.LicensePlate, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created vehicle id=%d plate=%s", created.ID, created.LicensePlate)
	return models.FromDomainVehicle(created), nil
}

// GetByID получает автомобиль по ID
func (s *Service) GetByID(ctx context.Context, id int64, staffID int64) (*models.VehicleResponse, error) {
	s.logger.Info("GetByID: fetching vehicle id=%d for staff=%d", id, staffID)

	if err := s.checkStaffAccess(ctx, staffID, staffservice.PermissionManageFleet); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("GetByID: vehicle id=%d not found", id)
			return nil, ErrVehicleNotFound
		}
		s.logger.Error("GetByID: repository error for vehicle id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainVehicle(vehicle), nil
}

// List получает автомобили парка с фильтрацией по группе и статусу
func (s *Service) List(ctx context.Context, req *models.ListVehiclesRequest) (*models.VehicleListResponse, error) {
	s.logger.Info("List: fetching vehicles for staff=%d", req.StaffID)

	if err := s.checkStaffAccess(ctx, req.StaffID, staffservice.PermissionManageFleet); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	vehicles, err := s.vehicleRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d vehicles for staff=%d", len(vehicles), req.StaffID)
	return models.FromDomainVehicleList(vehicles), nil
}

// Update обновляет автомобиль
// Заполненные поля запроса заменяют текущие значения (get -> merge -> update)
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateVehicleRequest) (*models.VehicleResponse, error) {
	s.logger.Info("Update: updating vehicle id=%d by staff=%d", id, req.StaffID)

	if err := s.checkStaffAccess(ctx, req.StaffID, staffservice.PermissionManageFleet); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("Update: vehicle id=%d not found", id)
			return nil, ErrVehicleNotFound
		}
		s.logger.Error("Update: repository error for vehicle id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := req.ApplyTo(vehicle); err != nil {
		s.logger.Warn("Update: invalid payload for vehicle id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Смена госномера не должна дублировать существующий
	if req.LicensePlate != nil {
		existing, err := s.vehicleRepo.GetByLicensePlate(ctx, vehicle.LicensePlate)
		if err == nil && existing.ID != id {
			s.logger.Warn("Update: vehicle plate=%s already exists", vehicle.LicensePlate)
			return nil, ErrVehicleAlreadyExists
		}
		if err != nil && !errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Error("Update: repository error checking plate=%s: %v", vehicle.LicensePlate, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
	}

	if req.GroupID != nil {
		if err := s.checkGroupExists(ctx, *req.GroupID); err != nil {
			return nil, err
		}
	}

	updated, err := s.vehicleRepo.Update(ctx, id, vehicle)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			s.logger.Warn("Update: vehicle id=%d disappeared during update", id)
			return nil, ErrVehicleNotFound
		}
		s.logger.Error("Update: repository error for vehicle id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated vehicle id=%d", id)
	return models.FromDomainVehicle(updated), nil
}

// Delete удаляет автомобиль из парка
// Автомобиль с активными бронями удалить нельзя. Проверка и удаление
// выполняются в serializable транзакции, чтобы параллельное создание
// брони не проскочило между ними.
func (s *Service) Delete(ctx context.Context, id int64, staffID int64) error {
	s.logger.Info("Delete: deleting vehicle id=%d by staff=%d", id, staffID)

	if err := s.checkStaffAccess(ctx, staffID, staffservice.PermissionManageFleet); err != nil {
		return err
	}

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		vehicle, err := s.vehicleRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
				return ErrVehicleNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		count, err := s.bookingRepo.CountActiveByLicensePlate(ctx, vehicle.LicensePlate)
		if err != nil {
			return fmt.Errorf("%w: Delete - count active bookings: %v", ErrInternal, err)
		}
		if count > 0 {
			s.logger.Warn("Delete: vehicle id=%d has %d active bookings", id, count)
			return ErrVehicleHasActiveBookings
		}

		return s.vehicleRepo.Delete(ctx, id)
	})

	if err != nil {
		if errors.Is(err, ErrVehicleNotFound) || errors.Is(err, ErrVehicleHasActiveBookings) {
			return err
		}
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			return ErrVehicleNotFound
		}
		s.logger.Error("Delete: transaction error for vehicle id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted vehicle id=%d", id)
	return nil
}

// checkGroupExists проверяет существование группы автопарка
func (s *Service) checkGroupExists(ctx context.Context, groupID int64) error {
	_, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, groupRepo.ErrGroupNotFound) {
			s.logger.Warn("checkGroupExists: group id=%d not found", groupID)
			return ErrGroupNotFound
		}
		s.logger.Error("checkGroupExists: repository error for group id=%d: %v", groupID, err)
		return fmt.Errorf("%w: checkGroupExists - repository error: %v", ErrInternal, err)
	}
	return nil
}

// checkStaffAccess проверяет наличие права доступа у сотрудника
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
