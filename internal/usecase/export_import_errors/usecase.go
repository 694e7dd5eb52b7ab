package export_import_errors

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-FleetService/internal/domain"
	staffClient "github.com/m04kA/SMC-FleetService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-FleetService/pkg/xlsx"
)

const (
	// reportSheetName имя единственного листа отчёта
	reportSheetName = "Ошибки"

	// reportBaseName основа имени файла, дата дописывается при выдаче
	reportBaseName = "oshibki_importa"

	// referencePlaceholder подставляется вместо пустого номера брони
	referencePlaceholder = "—"
)

// reportHeaders заголовки трёх колонок отчёта
var reportHeaders = []interface{}{"Строка", "Номер брони", "Ошибка"}

// UseCase use case для выгрузки отчёта об ошибках импорта
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

// Execute собирает отчёт об ошибках: по строке на ошибку, в порядке входного
// списка. Отчёт предназначен для ручного исправления и не обязан проходить
// обратный импорт.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExportImportErrors: staff=%d, errors=%d", req.StaffID, len(req.Errors))

	// 1. Валидация входных данных
	if req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: staff_id must be positive", ErrInvalidInput)
	}
	for i, e := range req.Errors {
		if e.Row <= 0 {
			return nil, fmt.Errorf("%w: errors[%d].row must be positive", ErrInvalidInput, i)
		}
	}

	// 2. Проверяем права сотрудника
	if err := uc.checkStaffAccess(ctx, req.StaffID); err != nil {
		return nil, err
	}

	// 3. Собираем строки отчёта, сохраняя порядок входного списка
	rows := make([][]interface{}, 0, len(req.Errors)+1)
	rows = append(rows, reportHeaders)
	for _, e := range req.Errors {
		ref := e.Reference
		if ref == "" {
			ref = referencePlaceholder
		}
		rows = append(rows, []interface{}{e.Row, ref, e.Message})
	}

	data, err := xlsx.Encode(reportSheetName, rows)
	if err != nil {
		uc.logger.Error("ExportImportErrors: failed to encode workbook: %v", err)
		return nil, fmt.Errorf("%w: failed to encode workbook: %v", ErrInternal, err)
	}

	fileName := fmt.Sprintf("%s_%s.xlsx",
		reportBaseName, uc.timeProvider.Now().Format(domain.DateFormat))

	uc.logger.Info("ExportImportErrors: built %s, %d bytes", fileName, len(data))

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
			uc.logger.Warn("ExportImportErrors: staff member id=%d not found", staffID)
			return ErrAccessDenied
		}
		uc.logger.Error("ExportImportErrors: failed to get staff member id=%d: %v", staffID, err)
		return fmt.Errorf("%w: failed to get staff member: %v", ErrInternal, err)
	}

	if !staff.HasPermission(staffClient.PermissionManageFleet) {
		uc.logger.Warn("ExportImportErrors: staff member id=%d lacks fleet permission", staffID)
		return ErrAccessDenied
	}

	return nil
}
