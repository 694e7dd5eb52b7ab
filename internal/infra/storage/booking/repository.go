package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-FleetService/internal/domain"
	"github.com/m04kA/SMC-FleetService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FleetService/pkg/psqlbuilder"
)

// Колонки таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"reference",
	"customer_name",
	"customer_phone",
	"license_plate",
	"confirmed_at",
	"pickup_date",
	"pickup_location",
	"dropoff_date",
	"dropoff_location",
	"price",
	"deposit",
	"deposit_returned_on",
	"deposit_return_note",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронями автопарка
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую бронь
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Иначе выполняет обычный запрос без транзакции.
//
// Импорт броней намеренно вызывает Create вне общей транзакции:
// каждая строка файла фиксируется отдельно, отказ одной строки
// не откатывает остальные.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"customer_name",
			"customer_phone",
			"license_plate",
			"confirmed_at",
			"pickup_date",
			"pickup_location",
			"dropoff_date",
			"dropoff_location",
			"price",
			"deposit",
			"deposit_returned_on",
			"deposit_return_note",
			"status",
			"notes",
		).
		Values(
			booking.Reference,
			booking.CustomerName,
			booking.CustomerPhone,
			booking.LicensePlate,
			booking.ConfirmedAt,
			booking.PickupDate,
			booking.PickupLocation,
			booking.DropoffDate,
			booking.DropoffLocation,
			booking.Price,
			booking.Deposit,
			booking.DepositReturn.Date,
			booking.DepositReturn.Note,
			booking.Status,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронь по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает брони с гибкой фильтрацией
// Поддерживает фильтрацию по статусу, госномеру, номеру брони и периоду выдачи.
// Limit = 0 означает выборку без ограничения.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("pickup_date DESC, id DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.LicensePlate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"license_plate": *filter.LicensePlate})
	}
	if filter.Reference != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"reference": *filter.Reference})
	}
	if filter.PickupFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"pickup_date": *filter.PickupFrom})
	}
	if filter.PickupTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"pickup_date": *filter.PickupTo})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit).Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountActiveByLicensePlate считает активные брони автомобиля
// Используется при проверке перед удалением автомобиля из парка
func (r *Repository) CountActiveByLicensePlate(ctx context.Context, licensePlate string) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	statusStrings := make([]string, len(domain.ActiveBookingStatuses))
	for i, s := range domain.ActiveBookingStatuses {
		statusStrings[i] = string(s)
	}

	activeSelect := psqlbuilder.Select("id").
		From("bookings").
		Where(squirrel.Eq{"license_plate": licensePlate}).
		Where(squirrel.Eq{"status": statusStrings})

	// Внутри транзакции блокируем строки, чтобы параллельное создание брони
	// не проскочило между проверкой и удалением автомобиля.
	// FOR UPDATE недопустим рядом с агрегатом, поэтому блокировка в подзапросе.
	if dbmetrics.IsInTransaction(ctx) {
		activeSelect = activeSelect.Suffix("FOR UPDATE")
	}

	query, args, err := psqlbuilder.Select("COUNT(*)").
		FromSelect(activeSelect, "active_bookings").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveByLicensePlate - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveByLicensePlate - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Update обновляет бронь целиком
// Вызывающий код обязан передать полную сущность (get -> merge -> update)
func (r *Repository) Update(ctx context.Context, id int64, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("reference", booking.Reference).
		Set("customer_name", booking.CustomerName).
		Set("customer_phone", booking.CustomerPhone).
		Set("license_plate", booking.LicensePlate).
		Set("confirmed_at", booking.ConfirmedAt).
		Set("pickup_date", booking.PickupDate).
		Set("pickup_location", booking.PickupLocation).
		Set("dropoff_date", booking.DropoffDate).
		Set("dropoff_location", booking.DropoffLocation).
		Set("price", booking.Price).
		Set("deposit", booking.Deposit).
		Set("deposit_returned_on", booking.DepositReturn.Date).
		Set("deposit_return_note", booking.DepositReturn.Note).
		Set("status", booking.Status).
		Set("notes", booking.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	booking.ID = id
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// Delete удаляет бронь (физическое удаление, использовать осторожно)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку результата в бронь
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var depositReturnedOn sql.NullTime
	var depositReturnNote sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.Reference,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.LicensePlate,
		&booking.ConfirmedAt,
		&booking.PickupDate,
		&booking.PickupLocation,
		&booking.DropoffDate,
		&booking.DropoffLocation,
		&booking.Price,
		&booking.Deposit,
		&depositReturnedOn,
		&depositReturnNote,
		&booking.Status,
		&booking.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if depositReturnedOn.Valid {
		booking.DepositReturn = domain.DepositReturnedOn(depositReturnedOn.Time)
	} else if depositReturnNote.Valid {
		booking.DepositReturn = domain.DepositReturnNote(depositReturnNote.String)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс броней
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
