package reservation

import (
	"context"
	"testing"
	"time"

	"gearbook/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) Create(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	if r != nil {
		r.ID = 555 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockReservationRepository) Update(ctx context.Context, r *domain.Reservation) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) ListByOrg(ctx context.Context, orgID int64) ([]domain.Reservation, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockReservationRepository) GetConflicts(ctx context.Context, orgID, assetID int64, start, end time.Time, excludeID int64) ([]domain.ConflictingReservation, error) {
	args := m.Called(ctx, orgID, assetID, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ConflictingReservation), args.Error(1)
}

type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) GetByIDs(ctx context.Context, orgID int64, ids []int64) ([]domain.Asset, error) {
	args := m.Called(ctx, orgID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

type MockKitRepository struct {
	mock.Mock
}

func (m *MockKitRepository) GetByIDs(ctx context.Context, orgID int64, ids []int64) ([]domain.Kit, error) {
	args := m.Called(ctx, orgID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Kit), args.Error(1)
}

func newTestService() (*Service, *MockReservationRepository, *MockAssetRepository, *MockKitRepository) {
	reservations := new(MockReservationRepository)
	assets := new(MockAssetRepository)
	kits := new(MockKitRepository)
	return NewService(reservations, assets, kits), reservations, assets, kits
}

func activeAsset(id int64, name string) domain.Asset {
	return domain.Asset{ID: id, OrgID: 1, Name: name, Status: domain.AssetActive, Quantity: 1}
}

func TestExpandSelection_KitQuantitiesAreAdditive(t *testing.T) {
	service, _, _, kits := newTestService()

	// kit = {assetA(10): 2, assetB(20): 1}; assetA also selected directly
	kits.On("GetByIDs", mock.Anything, int64(1), []int64{100}).Return([]domain.Kit{
		{
			ID:    100,
			OrgID: 1,
			Name:  "Camera kit",
			Items: []domain.KitItem{
				{KitID: 100, AssetID: 10, Quantity: 2},
				{KitID: 100, AssetID: 20, Quantity: 1},
			},
		},
	}, nil)

	slots, err := service.ExpandSelection(context.Background(), 1, []int64{10}, []int64{100})

	assert.NoError(t, err)
	assert.Equal(t, []int64{10, 10, 10, 20}, slots)
}

func TestExpandSelection_DirectSelectionDeduplicated(t *testing.T) {
	service, _, _, _ := newTestService()

	slots, err := service.ExpandSelection(context.Background(), 1, []int64{10, 10, 20}, nil)

	assert.NoError(t, err)
	assert.Equal(t, []int64{10, 20}, slots)
}

func TestExpandSelection_EmptyKitContributesNothing(t *testing.T) {
	service, _, _, kits := newTestService()

	kits.On("GetByIDs", mock.Anything, int64(1), []int64{100}).Return([]domain.Kit{
		{ID: 100, OrgID: 1, Name: "Empty kit", Items: []domain.KitItem{}},
	}, nil)

	slots, err := service.ExpandSelection(context.Background(), 1, nil, []int64{100})

	assert.NoError(t, err)
	assert.Empty(t, slots)
}

func TestExpandSelection_UnknownKit(t *testing.T) {
	service, _, _, kits := newTestService()

	kits.On("GetByIDs", mock.Anything, int64(1), []int64{100, 101}).Return([]domain.Kit{
		{ID: 100, OrgID: 1, Name: "Known kit"},
	}, nil)

	_, err := service.ExpandSelection(context.Background(), 1, nil, []int64{100, 101})

	assert.ErrorIs(t, err, ErrKitNotFound)
}

func TestCheckAvailability_SharedBoundaryDayOverlaps(t *testing.T) {
	service, reservations, assets, _ := newTestService()

	assets.On("GetByIDs", mock.Anything, int64(1), []int64{10}).Return([]domain.Asset{activeAsset(10, "Camera")}, nil)

	existingStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	existingEnd := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	reservations.On("GetConflicts", mock.Anything, int64(1), int64(10), mock.Anything, mock.Anything, int64(0)).
		Return([]domain.ConflictingReservation{
			{ReservationID: 7, Title: "Shoot", StartDate: existingStart, EndDate: existingEnd, Status: domain.ReservationConfirmed, Quantity: 1},
		}, nil)

	// requested [2024-01-10, 2024-01-15] shares the boundary day
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	availability, err := service.CheckAvailability(context.Background(), 1, []int64{10}, start, end, 0)

	require.NoError(t, err)
	require.Len(t, availability, 1)
	assert.False(t, availability[0].IsAvailable)
	require.Len(t, availability[0].Conflicts, 1)
	assert.Equal(t, int64(7), availability[0].Conflicts[0].ReservationID)
	assert.Equal(t, "Camera", availability[0].AssetName)
}

func TestCheckAvailability_NoOverlapWhenRangesDisjoint(t *testing.T) {
	service, reservations, assets, _ := newTestService()

	assets.On("GetByIDs", mock.Anything, int64(1), []int64{10}).Return([]domain.Asset{activeAsset(10, "Camera")}, nil)
	reservations.On("GetConflicts", mock.Anything, int64(1), int64(10), mock.Anything, mock.Anything, int64(0)).
		Return([]domain.ConflictingReservation{}, nil)

	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	availability, err := service.CheckAvailability(context.Background(), 1, []int64{10}, start, end, 0)

	require.NoError(t, err)
	require.Len(t, availability, 1)
	assert.True(t, availability[0].IsAvailable)
	assert.Empty(t, availability[0].Conflicts)
}

func TestCheckAvailability_SelfExclusionPassedThrough(t *testing.T) {
	service, reservations, assets, _ := newTestService()

	assets.On("GetByIDs", mock.Anything, int64(1), []int64{10}).Return([]domain.Asset{activeAsset(10, "Camera")}, nil)
	reservations.On("GetConflicts", mock.Anything, int64(1), int64(10), mock.Anything, mock.Anything, int64(42)).
		Return([]domain.ConflictingReservation{}, nil)

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	availability, err := service.CheckAvailability(context.Background(), 1, []int64{10}, start, end, 42)

	require.NoError(t, err)
	assert.True(t, availability[0].IsAvailable)
	reservations.AssertCalled(t, "GetConflicts", mock.Anything, int64(1), int64(10), start, end, int64(42))
}

func TestCheckAvailability_DuplicateSlotsCheckedOnce(t *testing.T) {
	service, reservations, assets, _ := newTestService()

	assets.On("GetByIDs", mock.Anything, int64(1), []int64{10}).Return([]domain.Asset{activeAsset(10, "Camera")}, nil)
	reservations.On("GetConflicts", mock.Anything, int64(1), int64(10), mock.Anything, mock.Anything, int64(0)).
		Return([]domain.ConflictingReservation{}, nil).Once()

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	availability, err := service.CheckAvailability(context.Background(), 1, []int64{10, 10, 10}, start, end, 0)

	require.NoError(t, err)
	assert.Len(t, availability, 1)
	reservations.AssertExpectations(t)
}

func TestCreate_EndBeforeStartRejected(t *testing.T) {
	service, _, _, _ := newTestService()

	_, _, err := service.Create(context.Background(), 1, 9, CreateReservationRequest{
		Title:     "Backwards",
		StartDate: "2025-03-10",
		EndDate:   "2025-03-01",
		AssetIDs:  []int64{10},
	})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_EmptySelectionRejected(t *testing.T) {
	service, _, _, _ := newTestService()

	_, _, err := service.Create(context.Background(), 1, 9, CreateReservationRequest{
		Title:     "Nothing",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-05",
	})

	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestCreate_InactiveAssetRejected(t *testing.T) {
	service, _, assets, _ := newTestService()

	broken := domain.Asset{ID: 10, OrgID: 1, Name: "Broken light", Status: domain.AssetMaintenance, Quantity: 1}
	assets.On("GetByIDs", mock.Anything, int64(1), []int64{10}).Return([]domain.Asset{broken}, nil)

	_, _, err := service.Create(context.Background(), 1, 9, CreateReservationRequest{
		Title:     "Shoot",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-05",
		AssetIDs:  []int64{10},
	})

	assert.ErrorIs(t, err, ErrAssetNotReservable)
}

func TestCreate_ConflictWithoutOverrideReturnsWarning(t *testing.T) {
	service, reservations, assets, _ := newTestService()

	assets.On("GetByIDs", mock.Anything, int64(1), []int64{10}).Return([]domain.Asset{activeAsset(10, "Camera")}, nil)
	reservations.On("GetConflicts", mock.Anything, int64(1), int64(10), mock.Anything, mock.Anything, int64(0)).
		Return([]domain.ConflictingReservation{
			{ReservationID: 7, Title: "Existing shoot", Status: domain.ReservationConfirmed, Quantity: 1},
		}, nil)

	r, warn, err := service.Create(context.Background(), 1, 9, CreateReservationRequest{
		Title:     "Colliding shoot",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-05",
		AssetIDs:  []int64{10},
	})

	assert.NoError(t, err)
	assert.Nil(t, r)
	require.NotNil(t, warn)
	require.Len(t, warn.Availability, 1)
	assert.False(t, warn.Availability[0].IsAvailable)
	reservations.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_ConflictWithOverridePersists(t *testing.T) {
	service, reservations, assets, _ := newTestService()

	assets.On("GetByIDs", mock.Anything, int64(1), []int64{10}).Return([]domain.Asset{activeAsset(10, "Camera")}, nil)
	reservations.On("GetConflicts", mock.Anything, int64(1), int64(10), mock.Anything, mock.Anything, int64(0)).
		Return([]domain.ConflictingReservation{
			{ReservationID: 7, Title: "Existing shoot", Status: domain.ReservationConfirmed, Quantity: 1},
		}, nil)
	reservations.On("Create", mock.Anything, mock.Anything).Return(nil)

	r, warn, err := service.Create(context.Background(), 1, 9, CreateReservationRequest{
		Title:     "Deliberate double booking",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-05",
		AssetIDs:  []int64{10},
		Override:  true,
	})

	assert.NoError(t, err)
	assert.Nil(t, warn)
	require.NotNil(t, r)
	assert.Equal(t, domain.ReservationPending, r.Status)
	assert.Equal(t, int64(9), r.CreatedBy)
}

func TestCreate_KitExpansionAggregatedIntoAssetRows(t *testing.T) {
	service, reservations, assets, kits := newTestService()

	kits.On("GetByIDs", mock.Anything, int64(1), []int64{100}).Return([]domain.Kit{
		{
			ID:    100,
			OrgID: 1,
			Name:  "Camera kit",
			Items: []domain.KitItem{
				{KitID: 100, AssetID: 10, Quantity: 2},
				{KitID: 100, AssetID: 20, Quantity: 1},
			},
		},
	}, nil)
	assets.On("GetByIDs", mock.Anything, int64(1), []int64{10, 20}).
		Return([]domain.Asset{activeAsset(10, "Camera"), activeAsset(20, "Tripod")}, nil)
	reservations.On("GetConflicts", mock.Anything, int64(1), mock.Anything, mock.Anything, mock.Anything, int64(0)).
		Return([]domain.ConflictingReservation{}, nil)
	reservations.On("Create", mock.Anything, mock.Anything).Return(nil)

	r, warn, err := service.Create(context.Background(), 1, 9, CreateReservationRequest{
		Title:     "Kit plus direct selection",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-05",
		AssetIDs:  []int64{10},
		KitIDs:    []int64{100},
	})

	require.NoError(t, err)
	assert.Nil(t, warn)
	require.NotNil(t, r)
	// assetA three times (direct + kit×2), assetB once
	require.Len(t, r.Assets, 2)
	assert.Equal(t, int64(10), r.Assets[0].AssetID)
	assert.Equal(t, 3, r.Assets[0].Quantity)
	assert.Equal(t, int64(20), r.Assets[1].AssetID)
	assert.Equal(t, 1, r.Assets[1].Quantity)
}

func TestUpdate_SelfExcludedFromConflicts(t *testing.T) {
	service, reservations, assets, _ := newTestService()

	existing := &domain.Reservation{
		ID:       42,
		OrgID:    1,
		Title:    "Original",
		Status:   domain.ReservationConfirmed,
		Priority: domain.PriorityNormal,
	}
	reservations.On("GetByID", mock.Anything, int64(42)).Return(existing, nil)
	assets.On("GetByIDs", mock.Anything, int64(1), []int64{10}).Return([]domain.Asset{activeAsset(10, "Camera")}, nil)
	reservations.On("GetConflicts", mock.Anything, int64(1), int64(10), mock.Anything, mock.Anything, int64(42)).
		Return([]domain.ConflictingReservation{}, nil)
	reservations.On("Update", mock.Anything, mock.Anything).Return(nil)

	r, warn, err := service.Update(context.Background(), 1, 42, CreateReservationRequest{
		Title:     "Extended",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-07",
		AssetIDs:  []int64{10},
	})

	require.NoError(t, err)
	assert.Nil(t, warn)
	assert.Equal(t, "Extended", r.Title)
	reservations.AssertCalled(t, "GetConflicts", mock.Anything, int64(1), int64(10), mock.Anything, mock.Anything, int64(42))
}

func TestUpdate_WrongOrgHidden(t *testing.T) {
	service, reservations, _, _ := newTestService()

	reservations.On("GetByID", mock.Anything, int64(42)).Return(&domain.Reservation{
		ID:    42,
		OrgID: 2,
	}, nil)

	_, _, err := service.Update(context.Background(), 1, 42, CreateReservationRequest{
		Title:     "Stolen",
		StartDate: "2025-03-01",
		EndDate:   "2025-03-07",
		AssetIDs:  []int64{10},
	})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateStatus_ValidTransition(t *testing.T) {
	service, reservations, _, _ := newTestService()

	reservations.On("GetByID", mock.Anything, int64(42)).Return(&domain.Reservation{
		ID:     42,
		OrgID:  1,
		Status: domain.ReservationPending,
	}, nil).Once()
	reservations.On("UpdateStatus", mock.Anything, int64(42), domain.ReservationConfirmed).Return(nil)
	reservations.On("GetByID", mock.Anything, int64(42)).Return(&domain.Reservation{
		ID:     42,
		OrgID:  1,
		Status: domain.ReservationConfirmed,
	}, nil).Once()

	r, err := service.UpdateStatus(context.Background(), 1, 42, domain.ReservationConfirmed)

	require.NoError(t, err)
	assert.Equal(t, domain.ReservationConfirmed, r.Status)
	reservations.AssertExpectations(t)
}

func TestUpdateStatus_SkippingStatesRejected(t *testing.T) {
	service, reservations, _, _ := newTestService()

	reservations.On("GetByID", mock.Anything, int64(42)).Return(&domain.Reservation{
		ID:     42,
		OrgID:  1,
		Status: domain.ReservationPending,
	}, nil)

	_, err := service.UpdateStatus(context.Background(), 1, 42, domain.ReservationCompleted)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	reservations.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_CancelFromAnyNonTerminalState(t *testing.T) {
	service, reservations, _, _ := newTestService()

	reservations.On("GetByID", mock.Anything, int64(42)).Return(&domain.Reservation{
		ID:     42,
		OrgID:  1,
		Status: domain.ReservationActive,
	}, nil).Once()
	reservations.On("UpdateStatus", mock.Anything, int64(42), domain.ReservationCancelled).Return(nil)
	reservations.On("GetByID", mock.Anything, int64(42)).Return(&domain.Reservation{
		ID:     42,
		OrgID:  1,
		Status: domain.ReservationCancelled,
	}, nil).Once()

	r, err := service.UpdateStatus(context.Background(), 1, 42, domain.ReservationCancelled)

	require.NoError(t, err)
	assert.Equal(t, domain.ReservationCancelled, r.Status)
}

func TestUpdateStatus_TerminalStatesFrozen(t *testing.T) {
	service, reservations, _, _ := newTestService()

	reservations.On("GetByID", mock.Anything, int64(42)).Return(&domain.Reservation{
		ID:     42,
		OrgID:  1,
		Status: domain.ReservationCancelled,
	}, nil)

	_, err := service.UpdateStatus(context.Background(), 1, 42, domain.ReservationConfirmed)

	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}
