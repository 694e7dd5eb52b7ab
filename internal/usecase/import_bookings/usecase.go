package import_bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"

	staffClient "github.com/m04kA/SMC-FleetService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-FleetService/pkg/xlsx"
)

// UseCase use case для массового импорта броней из файла
type UseCase struct {
	bookingRepo BookingRepository
	staffClient StaffServiceClient
	metrics     ImportMetrics
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	staffClient StaffServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		staffClient: staffClient,
		logger:      logger,
	}
}

// WithMetrics включает запись метрик импорта
func (uc *UseCase) WithMetrics(m ImportMetrics) {
	uc.metrics = m
}

// Execute выполняет импорт броней из файла
// Строки обрабатываются независимо: отказ одной строки не прерывает импорт
// остальных. Итог с ошибками по всем строкам - обычный результат, а не сбой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ImportBookings: staff=%d, file=%s, size=%d",
		req.StaffID, req.FileName, len(req.Data))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ImportBookings: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права сотрудника
	if err := uc.checkStaffAccess(ctx, req.StaffID); err != nil {
		return nil, err
	}

	// 3. Приёмочные проверки файла: расширение и размер
	if err := validateFile(req); err != nil {
		uc.logger.Warn("ImportBookings: file rejected: %v", err)
		uc.observeFile("rejected")
		return nil, err
	}

	// 4. Декодируем книгу и снимаем грид первого листа
	grid, err := xlsx.Grid(req.Data)
	if err != nil {
		uc.logger.Warn("ImportBookings: failed to decode file %s: %v", req.FileName, err)
		uc.observeFile("rejected")
		return nil, fmt.Errorf("%w: %v", ErrFileNotParsable, err)
	}

	// 5. Разбираем строки в типизированные брони
	parsed, failures := parseGrid(grid)

	uc.logger.Info("ImportBookings: parsed %d rows, %d parse failures",
		len(parsed), len(failures))

	// 6. Фиксируем валидные строки последовательно, по одной попытке на строку
	// Каждая бронь пишется отдельно: отказ хранилища на строке K не мешает
	// строке K+1.
	successCount := 0
	for _, row := range parsed {
		if _, err := uc.bookingRepo.Create(ctx, row.booking); err != nil {
			uc.logger.Error("ImportBookings: row %d (reference=%s) commit failed: %v",
				row.row, row.booking.Reference, err)
			failures = append(failures, rowFailure{
				row:       row.row,
				reference: row.booking.Reference,
				message:   err.Error(),
			})
			continue
		}
		successCount++
	}

	// 7. Собираем итог: ошибки разбора и фиксации в одном списке по номерам строк
	resp := uc.aggregate(successCount, failures)

	uc.observeFile("accepted")
	uc.observeRows("committed", resp.SuccessCount)
	uc.observeRows("failed", resp.FailedCount)

	uc.logger.Info("ImportBookings: finished, success=%d, failed=%d",
		resp.SuccessCount, resp.FailedCount)

	return resp, nil
}

func (uc *UseCase) observeFile(status string) {
	if uc.metrics != nil {
		uc.metrics.FileProcessed(status)
	}
}

func (uc *UseCase) observeRows(outcome string, count int) {
	if uc.metrics != nil {
		uc.metrics.AddRows(outcome, count)
	}
}

// checkStaffAccess проверяет, что сотрудник существует и управляет парком
// Ошибка соединения с staffservice закрывает доступ: деградации здесь нет.
func (uc *UseCase) checkStaffAccess(ctx context.Context, staffID int64) error {
	staff, err := uc.staffClient.GetStaffMember(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffClient.ErrStaffMemberNotFound) {
			uc.logger.Warn("ImportBookings: staff member id=%d not found", staffID)
			return ErrAccessDenied
		}
		uc.logger.Error("ImportBookings: failed to get staff member id=%d: %v", staffID, err)
		return fmt.Errorf("%w: failed to get staff member: %v", ErrInternal, err)
	}

	if !staff.HasPermission(staffClient.PermissionManageFleet) {
		uc.logger.Warn("ImportBookings: staff member id=%d lacks fleet permission", staffID)
		return ErrAccessDenied
	}

	return nil
}

// aggregate сводит отказы разбора и фиксации в итог импорта
// Список ошибок упорядочен по возрастанию номера строки, порядок отказов
// одной строки сохраняется.
func (uc *UseCase) aggregate(successCount int, failures []rowFailure) *Response {
	sort.SliceStable(failures, func(i, j int) bool {
		return failures[i].row < failures[j].row
	})

	importErrors := make([]ImportError, 0, len(failures))
	for _, f := range failures {
		ref := f.reference
		if ref == "" {
			ref = referencePlaceholder
		}
		importErrors = append(importErrors, ImportError{
			Row:       f.row,
			Reference: ref,
			Message:   f.message,
		})
	}

	return &Response{
		SuccessCount: successCount,
		FailedCount:  len(importErrors),
		Errors:       importErrors,
	}
}
