package export_import_errors

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-FleetService/pkg/xlsx"
)

type fakeStaffClient struct {
	staff *staffservice.StaffMember
	err   error
}

func (f *fakeStaffClient) GetStaffMember(_ context.Context, _ int64) (*staffservice.StaffMember, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.staff, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func fleetManager() *staffservice.StaffMember {
	return &staffservice.StaffMember{
		ID:          7,
		FullName:    "Петров Пётр",
		Role:        "manager",
		Permissions: []string{staffservice.PermissionManageFleet},
	}
}

func TestExecute_ReportReproducesErrorsInOrder(t *testing.T) {
	uc := NewUseCase(&fakeStaffClient{staff: fleetManager()}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID: 7,
		Errors: []ImportError{
			{Row: 2, Reference: "BR-1", Message: "не заполнено обязательное поле «Клиент»"},
			{Row: 5, Reference: "—", Message: "поле «Дата выдачи»: дата должна быть в формате ДД/ММ/ГГГГ"},
			{Row: 9, Reference: "BR-7", Message: "duplicate key value violates unique constraint"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "oshibki_importa_2026-02-01.xlsx", resp.FileName)

	grid, gridErr := xlsx.Grid(resp.Data)
	require.NoError(t, gridErr)
	require.Len(t, grid, 4)

	assert.Equal(t, []string{"Строка", "Номер брони", "Ошибка"}, grid[0])
	assert.Equal(t, []string{"2", "BR-1", "не заполнено обязательное поле «Клиент»"}, grid[1])
	assert.Equal(t, []string{"5", "—", "поле «Дата выдачи»: дата должна быть в формате ДД/ММ/ГГГГ"}, grid[2])
	assert.Equal(t, []string{"9", "BR-7", "duplicate key value violates unique constraint"}, grid[3])
}

func TestExecute_EmptyReferenceGetsPlaceholder(t *testing.T) {
	uc := NewUseCase(&fakeStaffClient{staff: fleetManager()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID: 7,
		Errors:  []ImportError{{Row: 3, Reference: "", Message: "не заполнено обязательное поле «Номер брони»"}},
	})

	require.NoError(t, err)

	grid, gridErr := xlsx.Grid(resp.Data)
	require.NoError(t, gridErr)
	require.Len(t, grid, 2)
	assert.Equal(t, "—", grid[1][1])
}

func TestExecute_EmptyErrorListGivesHeaderOnlyReport(t *testing.T) {
	uc := NewUseCase(&fakeStaffClient{staff: fleetManager()}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{StaffID: 7})

	require.NoError(t, err)

	grid, gridErr := xlsx.Grid(resp.Data)
	require.NoError(t, gridErr)
	require.Len(t, grid, 1)
	assert.Equal(t, []string{"Строка", "Номер брони", "Ошибка"}, grid[0])
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeStaffClient{staff: fleetManager()}, nopLogger{})

	t.Run("zero staff id", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{StaffID: 0})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("non-positive row", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{
			StaffID: 7,
			Errors:  []ImportError{{Row: 0, Message: "сломанная строка"}},
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestExecute_AccessDenied(t *testing.T) {
	t.Run("no fleet permission", func(t *testing.T) {
		staff := &staffservice.StaffMember{
			ID:          7,
			Role:        "operator",
			Permissions: []string{staffservice.PermissionManageBookings},
		}
		uc := NewUseCase(&fakeStaffClient{staff: staff}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{StaffID: 7})

		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("staffservice unavailable", func(t *testing.T) {
		uc := NewUseCase(&fakeStaffClient{err: errors.New("connection refused")}, nopLogger{})

		_, err := uc.Execute(context.Background(), &Request{StaffID: 7})

		assert.ErrorIs(t, err, ErrInternal)
	})
}
