package vehiclegroup

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-FleetService/internal/domain"
	"github.com/m04kA/SMC-FleetService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FleetService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с группами автопарка
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория групп
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую группу автопарка
func (r *Repository) Create(ctx context.Context, group *domain.VehicleGroup) (*domain.VehicleGroup, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("vehicle_groups").
		Columns(
			"name",
			"description",
			"daily_rate",
		).
		Values(
			group.Name,
			group.Description,
			group.DailyRate,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&group.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	group.CreatedAt = createdAt.Time
	group.UpdatedAt = updatedAt.Time

	return group, nil
}

// GetByID получает группу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.VehicleGroup, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"description",
		"daily_rate",
		"created_at",
		"updated_at",
	).
		From("vehicle_groups").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var group domain.VehicleGroup
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.DailyRate,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan group: %v", ErrScanRow, err)
	}

	group.CreatedAt = createdAt.Time
	group.UpdatedAt = updatedAt.Time

	return &group, nil
}

// List получает все группы автопарка
func (r *Repository) List(ctx context.Context) ([]*domain.VehicleGroup, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"description",
		"daily_rate",
		"created_at",
		"updated_at",
	).
		From("vehicle_groups").
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	groups := make([]*domain.VehicleGroup, 0)

	for rows.Next() {
		var group domain.VehicleGroup
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Description,
			&group.DailyRate,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		group.CreatedAt = createdAt.Time
		group.UpdatedAt = updatedAt.Time

		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return groups, nil
}

// Update обновляет группу автопарка
func (r *Repository) Update(ctx context.Context, id int64, group *domain.VehicleGroup) (*domain.VehicleGroup, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("vehicle_groups").
		Set("name", group.Name).
		Set("description", group.Description).
		Set("daily_rate", group.DailyRate).
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
		return nil, ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	group.ID = id
	group.CreatedAt = createdAt.Time
	group.UpdatedAt = updatedAt.Time

	return group, nil
}

// Delete удаляет группу автопарка
// Проверка на оставшиеся в группе автомобили выполняется на уровне сервиса
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("vehicle_groups").
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
		return ErrGroupNotFound
	}

	return nil
}
