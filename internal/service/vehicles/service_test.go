package vehicles

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetService/internal/domain"
	vehicleRepo "github.com/m04kA/SMC-FleetService/internal/infra/storage/vehicle"
	groupRepo "github.com/m04kA/SMC-FleetService/internal/infra/storage/vehiclegroup"
	"github.com/m04kA/SMC-FleetService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-FleetService/internal/service/vehicles/models"
	"github.com/m04kA/SMC-FleetService/pkg/ptr"
)

type fakeVehicleRepo struct {
	vehicles map[int64]*domain.Vehicle
	nextID   int64
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: map[int64]*domain.Vehicle{}}
}

func (f *fakeVehicleRepo) Create(_ context.Context, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	f.nextID++
	vehicle.ID = f.nextID
	stored := *vehicle
	f.vehicles[vehicle.ID] = &stored
	return vehicle, nil
}

func (f *fakeVehicleRepo) GetByID(_ context.Context, id int64) (*domain.Vehicle, error) {
	stored, ok := f.vehicles[id]
	if !ok {
		return nil, vehicleRepo.ErrVehicleNotFound
	}
	out := *stored
	return &out, nil
}

func (f *fakeVehicleRepo) GetByLicensePlate(_ context.Context, licensePlate string) (*domain.Vehicle, error) {
	for _, v := range f.vehicles {
		if v.LicensePlate == licensePlate {
			out := *v
			return &out, nil
		}
	}
	return nil, vehicleRepo.ErrVehicleNotFound
}

func (f *fakeVehicleRepo) List(_ context.Context, _ domain.VehiclesFilter) ([]*domain.Vehicle, error) {
	out := make([]*domain.Vehicle, 0, len(f.vehicles))
	for id := int64(1); id <= f.nextID; id++ {
		if v, ok := f.vehicles[id]; ok {
			copied := *v
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeVehicleRepo) Update(_ context.Context, id int64, vehicle *domain.Vehicle) (*domain.Vehicle, error) {
	if _, ok := f.vehicles[id]; !ok {
		return nil, vehicleRepo.ErrVehicleNotFound
	}
	vehicle.ID = id
	stored := *vehicle
	f.vehicles[id] = &stored
	return vehicle, nil
}

func (f *fakeVehicleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.vehicles[id]; !ok {
		return vehicleRepo.ErrVehicleNotFound
	}
	delete(f.vehicles, id)
	return nil
}

type fakeGroupRepo struct {
	groups map[int64]*domain.VehicleGroup
}

func (f *fakeGroupRepo) GetByID(_ context.Context, id int64) (*domain.VehicleGroup, error) {
	group, ok := f.groups[id]
	if !ok {
		return nil, groupRepo.ErrGroupNotFound
	}
	return group, nil
}

type fakeBookingCounter struct {
	activeCount int64
	err         error
}

func (f *fakeBookingCounter) CountActiveByLicensePlate(_ context.Context, _ string) (int64, error) {
	return f.activeCount, f.err
}

// fakeTxManager исполняет функцию без транзакции и считает вызовы
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
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

type serviceFixture struct {
	svc       *Service
	vehicles  *fakeVehicleRepo
	bookings  *fakeBookingCounter
	txManager *fakeTxManager
}

func newFixture() *serviceFixture {
	vehicles := newFakeVehicleRepo()
	bookings := &fakeBookingCounter{}
	txManager := &fakeTxManager{}
	groups := &fakeGroupRepo{groups: map[int64]*domain.VehicleGroup{
		1: {ID: 1, Name: "Бизнес-класс"},
	}}

	svc := NewService(
		vehicles,
		groups,
		bookings,
		&fakeStaffClient{staff: fleetManager()},
		txManager,
		nopLogger{},
	)

	return &serviceFixture{svc: svc, vehicles: vehicles, bookings: bookings, txManager: txManager}
}

func validVehicleRequest() *models.CreateVehicleRequest {
	return &models.CreateVehicleRequest{
		StaffID:      7,
		LicensePlate: "А123ВС77",
		Brand:        "Kia",
		Model:        "Rio",
		Year:         2022,
	}
}

func TestCreate_Success(t *testing.T) {
	fx := newFixture()

	resp, err := fx.svc.Create(context.Background(), validVehicleRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "А123ВС77", resp.LicensePlate)
	assert.Equal(t, "available", resp.Status)
}

func TestCreate_DuplicatePlate(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Create(context.Background(), validVehicleRequest())
	require.NoError(t, err)

	_, err = fx.svc.Create(context.Background(), validVehicleRequest())

	assert.ErrorIs(t, err, ErrVehicleAlreadyExists)
	assert.Len(t, fx.vehicles.vehicles, 1)
}

func TestCreate_UnknownGroup(t *testing.T) {
	fx := newFixture()

	req := validVehicleRequest()
	req.GroupID = ptr.Ptr(int64(404))

	_, err := fx.svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestCreate_InvalidYear(t *testing.T) {
	fx := newFixture()

	req := validVehicleRequest()
	req.Year = 1920

	_, err := fx.svc.Create(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_AccessDenied(t *testing.T) {
	fx := newFixture()
	staff := &staffservice.StaffMember{
		ID:          7,
		Role:        "operator",
		Permissions: []string{staffservice.PermissionManageBookings},
	}
	fx.svc.staffClient = &fakeStaffClient{staff: staff}

	_, err := fx.svc.Create(context.Background(), validVehicleRequest())

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_StaffServiceUnavailableFailsClosed(t *testing.T) {
	fx := newFixture()
	fx.svc.staffClient = &fakeStaffClient{err: errors.New("connection refused")}

	_, err := fx.svc.Create(context.Background(), validVehicleRequest())

	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetByID_NotFound(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.GetByID(context.Background(), 404, 7)

	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestUpdate_PlateConflict(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Create(context.Background(), validVehicleRequest())
	require.NoError(t, err)

	second := validVehicleRequest()
	second.LicensePlate = "В456ЕК99"
	created, err := fx.svc.Create(context.Background(), second)
	require.NoError(t, err)

	_, err = fx.svc.Update(context.Background(), created.ID, &models.UpdateVehicleRequest{
		StaffID:      7,
		LicensePlate: ptr.Ptr("А123ВС77"),
	})

	assert.ErrorIs(t, err, ErrVehicleAlreadyExists)
}

func TestUpdate_KeepsOwnPlate(t *testing.T) {
	fx := newFixture()

	created, err := fx.svc.Create(context.Background(), validVehicleRequest())
	require.NoError(t, err)

	// Повторная отправка того же госномера конфликтом не считается
	resp, err := fx.svc.Update(context.Background(), created.ID, &models.UpdateVehicleRequest{
		StaffID:      7,
		LicensePlate: ptr.Ptr("А123ВС77"),
		Status:       ptr.Ptr("in_service"),
	})

	require.NoError(t, err)
	assert.Equal(t, "in_service", resp.Status)
}

func TestDelete_RefusesWithActiveBookings(t *testing.T) {
	fx := newFixture()
	fx.bookings.activeCount = 2

	created, err := fx.svc.Create(context.Background(), validVehicleRequest())
	require.NoError(t, err)

	err = fx.svc.Delete(context.Background(), created.ID, 7)

	assert.ErrorIs(t, err, ErrVehicleHasActiveBookings)
	assert.Len(t, fx.vehicles.vehicles, 1, "vehicle must survive a refused delete")
}

func TestDelete_Success(t *testing.T) {
	fx := newFixture()

	created, err := fx.svc.Create(context.Background(), validVehicleRequest())
	require.NoError(t, err)

	err = fx.svc.Delete(context.Background(), created.ID, 7)

	require.NoError(t, err)
	assert.Empty(t, fx.vehicles.vehicles)
	assert.Equal(t, 1, fx.txManager.calls, "delete must run inside a transaction")
}

func TestDelete_NotFound(t *testing.T) {
	fx := newFixture()

	err := fx.svc.Delete(context.Background(), 404, 7)

	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestList_FiltersValidated(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.List(context.Background(), &models.ListVehiclesRequest{
		StaffID: 7,
		Status:  ptr.Ptr("flying"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
