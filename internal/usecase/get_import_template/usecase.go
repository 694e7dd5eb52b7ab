package get_import_template

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FleetService/internal/domain"
	staffClient "github.com/m04kA/SMC-FleetService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-FleetService/pkg/xlsx"
)

const (
	// templateSheetName имя единственного листа шаблона
	templateSheetName = "Брони"

	// templateBaseName основа имени файла, дата дописывается при выдаче
	templateBaseName = "shablon_import_broni"
)

// UseCase use case для выдачи шаблона файла импорта
type UseCase struct {
	staffClient  StaffServiceClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(staffClient StaffServiceClient, logger Logger) *UseCase {
	return &UseCase{
		staffClient:  staffClient,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute собирает шаблон: единственный лист с одной строкой заголовков
// колонок импорта, без строк данных. Заполненный по шаблону файл проходит
// разбор импорта без ошибок.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetImportTemplate: staff=%d", req.StaffID)

	// 1. Валидация входных данных
	if req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: staff_id must be positive", ErrInvalidInput)
	}

	// 2. Проверяем права сотрудника
	if err := uc.checkStaffAccess(ctx, req.StaffID); err != nil {
		return nil, err
	}

	// 3. Собираем строку заголовков в порядке колонок импорта
	columns := domain.ImportColumns()
	header := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		header = append(header, col.Header)
	}

	data, err := xlsx.Encode(templateSheetName, [][]interface{}{header})
	if err != nil {
		uc.logger.Error("GetImportTemplate: failed to encode workbook: %v", err)
		return nil, fmt.Errorf("%w: failed to encode workbook: %v", ErrInternal, err)
	}

	fileName := fmt.Sprintf("%s_%s.xlsx",
		templateBaseName, uc.timeProvider.Now().Format(domain.DateFormat))

	uc.logger.Info("GetImportTemplate: built %s, %d bytes", fileName, len(data))

	return &Response{
		FileName: fileName,
		Data:     data,
	}, nil
}

// checkStaffAccess проверяет, что сотрудник существует и управляет парком
func (uc *UseCase) checkStaffAccess(ctx context.Context, staffID int64) error {
	staff, err := uc.staffClient.GetStaffMember(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffClient.ErrStaffMemberNotFound) {
			uc.logger.Warn("GetImportTemplate: staff member id=%d not found", staffID)
			return ErrAccessDenied
		}
		uc.logger.Error("GetImportTemplate: failed to get staff member id=%d: %v", staffID, err)
		return fmt.Errorf("%w: failed to get staff member: %v", ErrInternal, err)
	}

	if !staff.HasPermission(staffClient.PermissionManageFleet) {
		uc.logger.Warn("GetImportTemplate: staff member id=%d lacks fleet permission", staffID)
		return ErrAccessDenied
	}

	return nil
}
