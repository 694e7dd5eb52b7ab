package groups

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FleetService/internal/domain"
	groupRepo "github.com/m04kA/SMC-FleetService/internal/infra/storage/vehiclegroup"
	"github.com/m04kA/SMC-FleetService/internal/integrations/staffservice"
	"github.com/m04kA/SMC-FleetService/internal/service/groups/models"
	"github.com/m04kA/SMC-FleetService/pkg/ptr"
)

type fakeGroupRepo struct {
	groups map[int64]*domain.VehicleGroup
	nextID int64
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{groups: map[int64]*domain.VehicleGroup{}}
}

func (f *fakeGroupRepo) Create(_ context.Context, group *domain.VehicleGroup) (*domain.VehicleGroup, error) {
	f.nextID++
	group.ID = f.nextID
	stored := *group
	f.groups[group.ID] = &stored
	return group, nil
}

func (f *fakeGroupRepo) GetByID(_ context.Context, id int64) (*domain.VehicleGroup, error) {
	stored, ok := f.groups[id]
	if !ok {
		return nil, groupRepo.ErrGroupNotFound
	}
	out := *stored
	return &out, nil
}

func (f *fakeGroupRepo) List(_ context.Context) ([]*domain.VehicleGroup, error) {
	out := make([]*domain.VehicleGroup, 0, len(f.groups))
	for id := int64(1); id <= f.nextID; id++ {
		if g, ok := f.groups[id]; ok {
			copied := *g
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (f *fakeGroupRepo) Update(_ context.Context, id int64, group *domain.VehicleGroup) (*domain.VehicleGroup, error) {
	if _, ok := f.groups[id]; !ok {
		return nil, groupRepo.ErrGroupNotFound
	}
	group.ID = id
	stored := *group
	f.groups[id] = &stored
	return group, nil
}

func (f *fakeGroupRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.groups[id]; !ok {
		return groupRepo.ErrGroupNotFound
	}
	delete(f.groups, id)
	return nil
}

type fakeVehicleCounter struct {
	countByGroup map[int64]int64
}

func (f *fakeVehicleCounter) CountByGroupID(_ context.Context, groupID int64) (int64, error) {
	return f.countByGroup[groupID], nil
}

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
	groups    *fakeGroupRepo
	vehicles  *fakeVehicleCounter
	txManager *fakeTxManager
}

func newFixture() *serviceFixture {
	groups := newFakeGroupRepo()
	vehicles := &fakeVehicleCounter{countByGroup: map[int64]int64{}}
	txManager := &fakeTxManager{}

	svc := NewService(
		groups,
		vehicles,
		&fakeStaffClient{staff: fleetManager()},
		txManager,
		nopLogger{},
	)

	return &serviceFixture{svc: svc, groups: groups, vehicles: vehicles, txManager: txManager}
}

func TestCreate_Success(t *testing.T) {
	fx := newFixture()

	resp, err := fx.svc.Create(context.Background(), &models.CreateGroupRequest{
		StaffID:     7,
		Name:        "Бизнес-класс",
		Description: ptr.Ptr("Седаны для командировок"),
		DailyRate:   7500,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Бизнес-класс", resp.Name)
	assert.Equal(t, 7500.0, resp.DailyRate)
}

func TestCreate_EmptyName(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Create(context.Background(), &models.CreateGroupRequest{
		StaffID:   7,
		DailyRate: 7500,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_NegativeRate(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Create(context.Background(), &models.CreateGroupRequest{
		StaffID:   7,
		Name:      "Эконом",
		DailyRate: -100,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_AccessDenied(t *testing.T) {
	fx := newFixture()
	staff := &staffservice.StaffMember{
		ID:          7,
		Role:        "operator",
		Permissions: []string{staffservice.PermissionManageBookings},
	}
	fx.svc.staffClient = &fakeStaffClient{staff: staff}

	_, err := fx.svc.List(context.Background(), 7)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestList_StaffServiceUnavailableFailsClosed(t *testing.T) {
	fx := newFixture()
	fx.svc.staffClient = &fakeStaffClient{err: errors.New("connection refused")}

	_, err := fx.svc.List(context.Background(), 7)

	assert.ErrorIs(t, err, ErrInternal)
}

func TestUpdate_Success(t *testing.T) {
	fx := newFixture()

	created, err := fx.svc.Create(context.Background(), &models.CreateGroupRequest{
		StaffID:   7,
		Name:      "Эконом",
		DailyRate: 2500,
	})
	require.NoError(t, err)

	resp, err := fx.svc.Update(context.Background(), created.ID, &models.UpdateGroupRequest{
		StaffID:   7,
		DailyRate: ptr.Ptr(3000.0),
	})

	require.NoError(t, err)
	assert.Equal(t, "Эконом", resp.Name)
	assert.Equal(t, 3000.0, resp.DailyRate)
}

func TestUpdate_NotFound(t *testing.T) {
	fx := newFixture()

	_, err := fx.svc.Update(context.Background(), 404, &models.UpdateGroupRequest{
		StaffID: 7,
		Name:    ptr.Ptr("Новое имя"),
	})

	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func TestDelete_RefusesNonEmptyGroup(t *testing.T) {
	fx := newFixture()

	created, err := fx.svc.Create(context.Background(), &models.CreateGroupRequest{
		StaffID:   7,
		Name:      "Эконом",
		DailyRate: 2500,
	})
	require.NoError(t, err)

	fx.vehicles.countByGroup[created.ID] = 3

	err = fx.svc.Delete(context.Background(), created.ID, 7)

	assert.ErrorIs(t, err, ErrGroupNotEmpty)
	assert.Len(t, fx.groups.groups, 1, "group must survive a refused delete")
}

func TestDelete_Success(t *testing.T) {
	fx := newFixture()

	created, err := fx.svc.Create(context.Background(), &models.CreateGroupRequest{
		StaffID:   7,
		Name:      "Эконом",
		DailyRate: 2500,
	})
	require.NoError(t, err)

	err = fx.svc.Delete(context.Background(), created.ID, 7)

	require.NoError(t, err)
	assert.Empty(t, fx.groups.groups)
	assert.Equal(t, 1, fx.txManager.calls, "delete must run inside a transaction")
}

func TestDelete_NotFound(t *testing.T) {
	fx := newFixture()

	err := fx.svc.Delete(context.Background(), 404, 7)

	assert.ErrorIs(t, err, ErrGroupNotFound)
}
