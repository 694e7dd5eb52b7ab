package groups

import (
	"context"
	"errors"
	"fmt"

	groupRepo "github.com/m04kA/SMC-FleetService/internal/infra/storage/vehiclegroup"
	"github.com/m04kA/SMC-FleetService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-FleetService/internal/service/groups/models"
)

// Service сервис для работы с группами автопарка
type Service struct {
	groupRepo   GroupRepository
	vehicleRepo VehicleRepository
	staffClient StaffServiceClient
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса групп
func NewService(
	groupRepo GroupRepository,
	vehicleRepo VehicleRepository,
	staffClient StaffServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		groupRepo:   groupRepo,
		vehicleRepo: vehicleRepo,
		staffClient: staffClient,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create создает группу автопарка
func (s *Service) Create(ctx context.Context, req *models.CreateGroupRequest) (*models.GroupResponse, error) {
	s.logger.Info("Create: creating group name=%s by staff=%d", req.Name, req.StaffID)

	if err := s.checkStaffAccess(ctx, req.StaffID, staffservice.PermissionManageFleet); err != nil {
		return nil, err
	}

	group, err := req.ToDomainGroup()
	if err != nil {
		s.logger.Warn("Create: invalid group payload name=%s: %v", req.Name, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.groupRepo.Create(ctx, group)
	if err != nil {
		s.logger.Error("Create: repository error for group name=%s: %v", req.Name, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created group id=%d name=%s", created.ID, created.Name)
	return models.FromDomainGroup(created), nil
}

// List получает все группы автопарка
func (s *Service) List(ctx context.Context, staffID int64) (*models.GroupListResponse, error) {
	s.logger.Info("List: fetching groups for staff=%d", staffID)

	if err := s.checkStaffAccess(ctx, staffID, staffservice.PermissionManageFleet); err != nil {
		return nil, err
	}

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d groups for staff=%d", len(groups), staffID)
	return models.FromDomainGroupList(groups), nil
}

// Update обновляет группу автопарка
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateGroupRequest) (*models.GroupResponse, error) {
	s.logger.Info("Update: updating group id=%d by staff=%d", id, req.StaffID)

	if err := s.checkStaffAccess(ctx, req.StaffID, staffservice.PermissionManageFleet); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, groupRepo.ErrGroupNotFound) {
			s.logger.Warn("Update: group id=%d not found", id)
			return nil, ErrGroupNotFound
		}
		s.logger.Error("Update: repository error for group id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if err := req.ApplyTo(group); err != nil {
		s.logger.Warn("Update: invalid payload for group id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.groupRepo.Update(ctx, id, group)
	if err != nil {
		if errors.Is(err, groupRepo.ErrGroupNotFound) {
			s.logger.Warn("Update: group id=%d disappeared during update", id)
			return nil, ErrGroupNotFound
		}
		s.logger.Error("Update: repository error for group id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated group id=%d", id)
	return models.FromDomainGroup(updated), nil
}

// Delete удаляет группу автопарка
// Группу с автомобилями удалить нельзя: сначала нужно перевести их в другую
// группу. Проверка и удаление выполняются в serializable транзакции.
func (s *Service) Delete(ctx context.Context, id int64, staffID int64) error {
	s.logger.Info("Delete: deleting group id=%d by staff=%d", id, staffID)

	if err := s.checkStaffAccess(ctx, staffID, staffservice.PermissionManageFleet); err != nil {
		return err
	}

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		count, err := s.vehicleRepo.CountByGroupID(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: Delete - count vehicles in group: %v", ErrInternal, err)
		}
		if count > 0 {
			s.logger.Warn("Delete: group id=%d still has %d vehicles", id, count)
			return ErrGroupNotEmpty
		}

		return s.groupRepo.Delete(ctx, id)
	})

	if err != nil {
		if errors.Is(err, ErrGroupNotEmpty) {
			return err
		}
		if errors.Is(err, groupRepo.ErrGroupNotFound) {
			s.logger.Warn("Delete: group id=%d not found", id)
			return ErrGroupNotFound
		}
		s.logger.Error("Delete: transaction error for group id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted group id=%d", id)
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
