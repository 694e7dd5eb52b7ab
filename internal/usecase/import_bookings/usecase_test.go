package import_bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetService/internal/domain"
	"github.com/m04kA/SMC-FleetService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-FleetService/pkg/xlsx"
)

type fakeBookingRepo struct {
	created []*domain.Booking
	failOn  map[string]error // отказ хранилища по номеру брони
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err, ok := f.failOn[booking.Reference]; ok {
		return nil, err
	}
	f.created = append(f.created, booking)
	out := *booking
	out.ID = int64(len(f.created))
	return &out, nil
}

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

// buildImportFile собирает файл импорта: заголовок плюс переданные строки
func buildImportFile(t *testing.T, dataRows ...[]interface{}) []byte {
	t.Helper()

	columns := domain.ImportColumns()
	header := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		header = append(header, col.Header)
	}

	rows := make([][]interface{}, 0, len(dataRows)+1)
	rows = append(rows, header)
	rows = append(rows, dataRows...)

	data, err := xlsx.Encode("Брони", rows)
	require.NoError(t, err)
	return data
}

func validDataRow(reference string) []interface{} {
	return []interface{}{
		"01/02/2026", reference, "Иванов Иван", "+7 900 123-45-67", "А123ВС77",
		"10/02/2026", "Москва, Тверская 1", "15/02/2026", "Москва, Тверская 1",
		"15 000,50", "5000", "", "подтверждена", "",
	}
}

func invalidDataRow(reference string) []interface{} {
	row := validDataRow(reference)
	row[5] = "не дата" // Дата выдачи
	return row
}

func newTestUseCase(repo *fakeBookingRepo, staff *fakeStaffClient) *UseCase {
	return NewUseCase(repo, staff, nopLogger{})
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeStaffClient{staff: fleetManager()})

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:  7,
		FileName: "import.xlsx",
		Data:     buildImportFile(t, validDataRow("BR-1"), validDataRow("BR-2")),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.SuccessCount)
	assert.Equal(t, 0, resp.FailedCount)
	assert.Empty(t, resp.Errors)

	require.Len(t, repo.created, 2)
	assert.Equal(t, "BR-1", repo.created[0].Reference)
	assert.Equal(t, "BR-2", repo.created[1].Reference)
}

func TestExecute_CountConservation(t *testing.T) {
	// Сумма успехов и отказов равна числу непустых строк данных
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeStaffClient{staff: fleetManager()})

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:  7,
		FileName: "import.xlsx",
		Data: buildImportFile(t,
			validDataRow("BR-1"),
			invalidDataRow("BR-2"),
			[]interface{}{""}, // пустая строка, исхода не имеет
			validDataRow("BR-3"),
			invalidDataRow("BR-4"),
		),
	})

	require.NoError(t, err)
	assert.Equal(t, 4, resp.SuccessCount+resp.FailedCount)
	assert.Equal(t, 2, resp.SuccessCount)
	assert.Equal(t, 2, resp.FailedCount)
}

func TestExecute_BlankRowKeepsPhysicalNumbers(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeStaffClient{staff: fleetManager()})

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:  7,
		FileName: "import.xlsx",
		Data: buildImportFile(t,
			validDataRow("BR-1"),            // строка 2
			[]interface{}{""},               // строка 3, пустая
			invalidDataRow("BR-2"),          // строка 4
		),
	})

	require.NoError(t, err)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, 4, resp.Errors[0].Row)
	assert.Equal(t, "BR-2", resp.Errors[0].Reference)
}

func TestExecute_PartialCommitFailure(t *testing.T) {
	// Отказ хранилища на строке K не мешает строке K+1
	repo := &fakeBookingRepo{
		failOn: map[string]error{"BR-2": errors.New("duplicate key value violates unique constraint")},
	}
	uc := newTestUseCase(repo, &fakeStaffClient{staff: fleetManager()})

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:  7,
		FileName: "import.xlsx",
		Data:     buildImportFile(t, validDataRow("BR-1"), validDataRow("BR-2"), validDataRow("BR-3")),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.SuccessCount)
	assert.Equal(t, 1, resp.FailedCount)

	require.Len(t, repo.created, 2)
	assert.Equal(t, "BR-1", repo.created[0].Reference)
	assert.Equal(t, "BR-3", repo.created[1].Reference)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, 3, resp.Errors[0].Row)
	assert.Equal(t, "BR-2", resp.Errors[0].Reference)
	assert.Equal(t, "duplicate key value violates unique constraint", resp.Errors[0].Message)
}

func TestExecute_ErrorsSortedByRow(t *testing.T) {
	// Отказ разбора на строке 4 и отказ фиксации на строке 2:
	// в итоге ошибки идут по возрастанию номера строки
	repo := &fakeBookingRepo{
		failOn: map[string]error{"BR-1": errors.New("insert failed")},
	}
	uc := newTestUseCase(repo, &fakeStaffClient{staff: fleetManager()})

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:  7,
		FileName: "import.xlsx",
		Data: buildImportFile(t,
			validDataRow("BR-1"),   // строка 2, упадет на фиксации
			validDataRow("BR-2"),   // строка 3
			invalidDataRow("BR-3"), // строка 4, упадет на разборе
		),
	})

	require.NoError(t, err)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, 2, resp.Errors[0].Row)
	assert.Equal(t, "BR-1", resp.Errors[0].Reference)
	assert.Equal(t, 4, resp.Errors[1].Row)
	assert.Equal(t, "BR-3", resp.Errors[1].Reference)
}

func TestExecute_MixedRowsReportInvalidDates(t *testing.T) {
	// Пять строк данных, плохие даты в строках 2 и 4 файла
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeStaffClient{staff: fleetManager()})

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:  7,
		FileName: "import.xlsx",
		Data: buildImportFile(t,
			invalidDataRow("BR-1"), // строка 2
			validDataRow("BR-2"),   // строка 3
			invalidDataRow("BR-3"), // строка 4
			validDataRow("BR-4"),   // строка 5
			validDataRow("BR-5"),   // строка 6
		),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.SuccessCount)
	assert.Equal(t, 2, resp.FailedCount)

	require.Len(t, resp.Errors, 2)
	assert.Equal(t, 2, resp.Errors[0].Row)
	assert.Equal(t, 4, resp.Errors[1].Row)
}

func TestExecute_AllRowsFailedIsNormalResult(t *testing.T) {
	// Импорт, в котором ни одна строка не прошла, завершается без ошибки
	// пайплайна: это обычный итог с нулем успехов
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeStaffClient{staff: fleetManager()})

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:  7,
		FileName: "import.xlsx",
		Data:     buildImportFile(t, invalidDataRow("BR-1"), invalidDataRow("BR-2")),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.SuccessCount)
	assert.Equal(t, 2, resp.FailedCount)
	assert.Empty(t, repo.created)
}

func TestExecute_HeaderOnlyFile(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeStaffClient{staff: fleetManager()})

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:  7,
		FileName: "import.xlsx",
		Data:     buildImportFile(t),
	})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.SuccessCount)
	assert.Equal(t, 0, resp.FailedCount)
	assert.Empty(t, resp.Errors)
}

func TestExecute_UnsupportedFileType(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeStaffClient{staff: fleetManager()})

	for _, name := range []string{"import.csv", "import.xls", "import", "import.XLSX.exe"} {
		_, err := uc.Execute(context.Background(), &Request{
			StaffID:  7,
			FileName: name,
			Data:     []byte("data"),
		})

		assert.ErrorIs(t, err, ErrUnsupportedFileType, "file %s", name)
	}
	assert.Empty(t, repo.created)
}

func TestExecute_UpperCaseExtensionAllowed(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeStaffClient{staff: fleetManager()})

	resp, err := uc.Execute(context.Background(), &Request{
		StaffID:  7,
		FileName: "IMPORT.XLSX",
		Data:     buildImportFile(t, validDataRow("BR-1")),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.SuccessCount)
}

func TestExecute_FileTooLarge(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeStaffClient{staff: fleetManager()})

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:  7,
		FileName: "import.xlsx",
		Data:     make([]byte, domain.MaxImportFileSizeBytes+1),
	})

	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Empty(t, repo.created)
}

func TestExecute_FileNotParsable(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeStaffClient{staff: fleetManager()})

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:  7,
		FileName: "import.xlsx",
		Data:     []byte("this is not a spreadsheet"),
	})

	assert.ErrorIs(t, err, ErrFileNotParsable)
	assert.Empty(t, repo.created)
}

func TestExecute_AccessDenied_NoFleetPermission(t *testing.T) {
	repo := &fakeBookingRepo{}
	staff := &staffservice.StaffMember{
		ID:          7,
		FullName:    "Сидоров Сидор",
		Role:        "operator",
		Permissions: []string{staffservice.PermissionManageBookings},
	}
	uc := newTestUseCase(repo, &fakeStaffClient{staff: staff})

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:  7,
		FileName: "import.xlsx",
		Data:     buildImportFile(t, validDataRow("BR-1")),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.created)
}

func TestExecute_AccessDenied_StaffNotFound(t *testing.T) {
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeStaffClient{err: staffservice.ErrStaffMemberNotFound})

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:  404,
		FileName: "import.xlsx",
		Data:     buildImportFile(t, validDataRow("BR-1")),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_StaffServiceUnavailableFailsClosed(t *testing.T) {
	// Недоступность StaffService закрывает доступ, а не пропускает импорт
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeStaffClient{err: errors.New("connection refused")})

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:  7,
		FileName: "import.xlsx",
		Data:     buildImportFile(t, validDataRow("BR-1")),
	})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, repo.created)
}

func TestExecute_InvalidRequest(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeStaffClient{staff: fleetManager()})

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero staff id", req: &Request{FileName: "import.xlsx", Data: []byte("x")}},
		{name: "empty file name", req: &Request{StaffID: 7, Data: []byte("x")}},
		{name: "empty data", req: &Request{StaffID: 7, FileName: "import.xlsx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_ImportedBookingFields(t *testing.T) {
	// Разобранные значения доходят до хранилища без искажений
	repo := &fakeBookingRepo{}
	uc := newTestUseCase(repo, &fakeStaffClient{staff: fleetManager()})

	row := validDataRow("BR-77")
	row[11] = "05/03/2026" // Возврат залога датой
	row[12] = "завершена"

	_, err := uc.Execute(context.Background(), &Request{
		StaffID:  7,
		FileName: "import.xlsx",
		Data:     buildImportFile(t, row),
	})

	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	b := repo.created[0]
	assert.Equal(t, "BR-77", b.Reference)
	assert.Equal(t, 15000.50, b.Price)
	assert.Equal(t, 5000.0, b.Deposit)
	assert.Equal(t, domain.StatusCompleted, b.Status)
	require.NotNil(t, b.DepositReturn.Date)
	assert.False(t, b.DepositOutstanding())
}
