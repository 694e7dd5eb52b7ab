package bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-FleetService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-FleetService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-FleetService/internal/service/bookings/models"
	"github.com/m04kA/SMC-FleetService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings  map[int64]*domain.Booking
	nextID    int64
	createErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[int64]*domain.Booking{}}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	booking.ID = f.nextID
	stored := *booking
	f.bookings[booking.ID] = &stored
	return booking, nil
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	stored, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	out := *stored
	return &out, nil
}

func (f *fakeBookingRepo) List(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0, len(f.bookings))
	for id := int64(1); id <= f.nextID; id++ {
		if b, ok := f.bookings[id]; ok {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, id int64, booking *domain.Booking) (*domain.Booking, error) {
	if _, ok := f.bookings[id]; !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	booking.ID = id
	stored := *booking
	f.bookings[id] = &stored
	return booking, nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.bookings[id]; !ok {
		return bookingRepo.ErrBookingNotFound
	}
	delete(f.bookings, id)
	return nil
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

func bookingsManager() *staffservice.StaffMember {
	return &staffservice.StaffMember{
		ID:          3,
		FullName:    "Смирнова Анна",
		Role:        "operator",
		Permissions: []string{staffservice.PermissionManageBookings},
	}
}

func validCreateRequest() *models.CreateBookingRequest {
	return &models.CreateBookingRequest{
		StaffID:         3,
		Reference:       "BR-2001",
		CustomerName:    "Иванов Иван",
		LicensePlate:    "А123ВС77",
		ConfirmedAt:     "2026-02-01",
		PickupDate:      "2026-02-10",
		PickupLocation:  "Москва, Тверская 1",
		DropoffDate:     "2026-02-15",
		DropoffLocation: "Москва, Тверская 1",
		Price:           15000.50,
		Deposit:         5000,
	}
}

func TestCreate_Success(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewService(repo, &fakeStaffClient{staff: bookingsManager()}, nopLogger{})

	resp, err := svc.Create(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "BR-2001", resp.Reference)
	assert.Equal(t, "2026-02-10", resp.PickupDate)
	assert.Equal(t, "confirmed", resp.Status)
	assert.True(t, resp.DepositOutstanding)
	require.Len(t, repo.bookings, 1)
}

func TestCreate_AccessDenied(t *testing.T) {
	staff := &staffservice.StaffMember{
		ID:          3,
		Role:        "viewer",
		Permissions: []string{},
	}
	svc := NewService(newFakeBookingRepo(), &fakeStaffClient{staff: staff}, nopLogger{})

	_, err := svc.Create(context.Background(), validCreateRequest())

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_StaffServiceUnavailableFailsClosed(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), &fakeStaffClient{err: errors.New("connection refused")}, nopLogger{})

	_, err := svc.Create(context.Background(), validCreateRequest())

	assert.ErrorIs(t, err, ErrInternal)
}

func TestCreate_InvalidPayload(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), &fakeStaffClient{staff: bookingsManager()}, nopLogger{})

	t.Run("bad date format", func(t *testing.T) {
		req := validCreateRequest()
		req.PickupDate = "10/02/2026"

		_, err := svc.Create(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("dropoff before pickup", func(t *testing.T) {
		req := validCreateRequest()
		req.DropoffDate = "2026-02-01"

		_, err := svc.Create(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("deposit return date and note together", func(t *testing.T) {
		req := validCreateRequest()
		req.DepositReturnDate = ptr.Ptr("2026-02-20")
		req.DepositReturnNote = ptr.Ptr("вернули наличными")

		_, err := svc.Create(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), &fakeStaffClient{staff: bookingsManager()}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 404, 3)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdate_MergesOnlyProvidedFields(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewService(repo, &fakeStaffClient{staff: bookingsManager()}, nopLogger{})

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	resp, err := svc.Update(context.Background(), created.ID, &models.UpdateBookingRequest{
		StaffID:           3,
		Status:            ptr.Ptr("completed"),
		DepositReturnNote: ptr.Ptr("ожидает получения"),
	})

	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.DepositReturnNote)
	assert.Equal(t, "ожидает получения", *resp.DepositReturnNote)
	// Остальные поля не тронуты
	assert.Equal(t, "BR-2001", resp.Reference)
	assert.Equal(t, "Иванов Иван", resp.CustomerName)
	assert.Equal(t, 15000.50, resp.Price)
}

func TestUpdate_InvalidStatus(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewService(repo, &fakeStaffClient{staff: bookingsManager()}, nopLogger{})

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID, &models.UpdateBookingRequest{
		StaffID: 3,
		Status:  ptr.Ptr("оплачена"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), &fakeStaffClient{staff: bookingsManager()}, nopLogger{})

	_, err := svc.Update(context.Background(), 404, &models.UpdateBookingRequest{StaffID: 3})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_InvalidStatusFilter(t *testing.T) {
	svc := NewService(newFakeBookingRepo(), &fakeStaffClient{staff: bookingsManager()}, nopLogger{})

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{
		StaffID: 3,
		Status:  ptr.Ptr("неизвестный"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_ReturnsBookings(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewService(repo, &fakeStaffClient{staff: bookingsManager()}, nopLogger{})

	first := validCreateRequest()
	second := validCreateRequest()
	second.Reference = "BR-2002"

	_, err := svc.Create(context.Background(), first)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), second)
	require.NoError(t, err)

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{StaffID: 3})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, "BR-2001", resp.Bookings[0].Reference)
	assert.Equal(t, "BR-2002", resp.Bookings[1].Reference)
}

func TestDelete(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewService(repo, &fakeStaffClient{staff: bookingsManager()}, nopLogger{})

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, 3))
	assert.Empty(t, repo.bookings)

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID, 3), ErrBookingNotFound)
}
