package reservation

import (
	"context"
	"errors"
	"time"

	"gearbook/internal/domain"

	"gorm.io/gorm"
)

type Service struct {
	reservations ReservationRepository
	assets       AssetRepository
	kits         KitRepository
}

func NewService(
	reservations ReservationRepository,
	assets AssetRepository,
	kits KitRepository,
) *Service {
	return &Service{
		reservations: reservations,
		assets:       assets,
		kits:         kits,
	}
}

// ConflictWarning is the non-error outcome of a booking attempt that hit
// conflicts without an override: the caller gets the full per-asset
// detail and decides whether to confirm.
type ConflictWarning struct {
	Availability []AssetAvailability
}

// ExpandSelection flattens directly selected assets plus kit contents
// into the multiset of asset slots to reserve. Direct selections count
// once each; every kit item contributes its asset id quantity times.
// Occurrences are additive across sources, never deduplicated.
func (s *Service) ExpandSelection(ctx context.Context, orgID int64, assetIDs, kitIDs []int64) ([]int64, error) {
	slots := make([]int64, 0, len(assetIDs))
	seen := make(map[int64]bool, len(assetIDs))
	for _, id := range assetIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		slots = append(slots, id)
	}

	if len(kitIDs) == 0 {
		return slots, nil
	}

	distinct := uniqueIDs(kitIDs)
	kits, err := s.kits.GetByIDs(ctx, orgID, distinct)
	if err != nil {
		return nil, err
	}
	if len(kits) != len(distinct) {
		return nil, ErrKitNotFound
	}

	for _, k := range kits {
		for _, item := range k.Items {
			for i := 0; i < item.Quantity; i++ {
				slots = append(slots, item.AssetID)
			}
		}
	}
	return slots, nil
}

// CheckAvailability reports, per distinct asset, whether the requested
// inclusive date range is free and which reservations collide. This is
// a point-in-time read: nothing stops a conflicting booking landing
// between this check and a subsequent Create.
func (s *Service) CheckAvailability(ctx context.Context, orgID int64, assetIDs []int64, start, end time.Time, excludeID int64) ([]AssetAvailability, error) {
	if end.Before(start) {
		return nil, ErrValidation
	}

	distinct := uniqueIDs(assetIDs)
	assets, err := s.assets.GetByIDs(ctx, orgID, distinct)
	if err != nil {
		return nil, err
	}
	if len(assets) != len(distinct) {
		return nil, ErrAssetNotFound
	}

	names := make(map[int64]string, len(assets))
	for _, a := range assets {
		names[a.ID] = a.Name
	}

	out := make([]AssetAvailability, 0, len(distinct))
	for _, id := range distinct {
		conflicts, err := s.reservations.GetConflicts(ctx, orgID, id, start, end, excludeID)
		if err != nil {
			return nil, err
		}
		out = append(out, AssetAvailability{
			AssetID:     id,
			AssetName:   names[id],
			IsAvailable: len(conflicts) == 0,
			Conflicts:   toConflictDetails(conflicts),
		})
	}
	return out, nil
}

// CheckAvailabilityRequest is the endpoint-shaped entry: parses dates and
// expands kit selections before checking.
func (s *Service) CheckAvailabilityRequest(ctx context.Context, orgID int64, req AvailabilityRequest) ([]AssetAvailability, error) {
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	slots, err := s.ExpandSelection(ctx, orgID, req.AssetIDs, req.KitIDs)
	if err != nil {
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrEmptySelection
	}

	return s.CheckAvailability(ctx, orgID, slots, start, end, req.ExcludeReservationID)
}

// Create books the selection. When conflicts exist and req.Override is
// false the reservation is not persisted and the warning carries the
// full availability detail. The conflict check and the insert are not
// serialized against concurrent bookers; the override workflow is the
// accepted mitigation for the race.
func (s *Service) Create(ctx context.Context, orgID, userID int64, req CreateReservationRequest) (*domain.Reservation, *ConflictWarning, error) {
	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, nil, err
	}

	priority := domain.ReservationPriority(req.Priority)
	if req.Priority == "" {
		priority = domain.PriorityNormal
	}
	if !priority.Valid() {
		return nil, nil, ErrValidation
	}

	slots, err := s.ExpandSelection(ctx, orgID, req.AssetIDs, req.KitIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(slots) == 0 {
		return nil, nil, ErrEmptySelection
	}

	if err := s.requireReservable(ctx, orgID, slots); err != nil {
		return nil, nil, err
	}

	availability, err := s.CheckAvailability(ctx, orgID, slots, start, end, 0)
	if err != nil {
		return nil, nil, err
	}
	if hasConflicts(availability) && !req.Override {
		return nil, &ConflictWarning{Availability: availability}, nil
	}

	r := &domain.Reservation{
		OrgID:       orgID,
		Title:       req.Title,
		Project:     req.Project,
		Description: req.Description,
		Notes:       req.Notes,
		StartDate:   start,
		EndDate:     end,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Location:    req.Location,
		Status:      domain.ReservationPending,
		Priority:    priority,
		CreatedBy:   userID,
		Assets:      aggregateSlots(slots),
	}
	if err := s.reservations.Create(ctx, r); err != nil {
		return nil, nil, err
	}
	return r, nil, nil
}

// Update rebooks an existing reservation with new details or selection.
// The availability check excludes the reservation itself so it does not
// conflict with its own rows.
func (s *Service) Update(ctx context.Context, orgID, id int64, req CreateReservationRequest) (*domain.Reservation, *ConflictWarning, error) {
	existing, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, nil, notFoundAs(err)
	}
	if existing.OrgID != orgID {
		return nil, nil, ErrNotFound
	}
	if existing.Status.Terminal() {
		return nil, nil, ErrInvalidStatusTransition
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, nil, err
	}

	priority := domain.ReservationPriority(req.Priority)
	if req.Priority == "" {
		priority = existing.Priority
	}
	if !priority.Valid() {
		return nil, nil, ErrValidation
	}

	slots, err := s.ExpandSelection(ctx, orgID, req.AssetIDs, req.KitIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(slots) == 0 {
		return nil, nil, ErrEmptySelection
	}

	if err := s.requireReservable(ctx, orgID, slots); err != nil {
		return nil, nil, err
	}

	availability, err := s.CheckAvailability(ctx, orgID, slots, start, end, id)
	if err != nil {
		return nil, nil, err
	}
	if hasConflicts(availability) && !req.Override {
		return nil, &ConflictWarning{Availability: availability}, nil
	}

	existing.Title = req.Title
	existing.Project = req.Project
	existing.Description = req.Description
	existing.Notes = req.Notes
	existing.StartDate = start
	existing.EndDate = end
	existing.StartTime = req.StartTime
	existing.EndTime = req.EndTime
	existing.Location = req.Location
	existing.Priority = priority
	existing.Assets = aggregateSlots(slots)

	if err := s.reservations.Update(ctx, existing); err != nil {
		return nil, nil, err
	}
	return existing, nil, nil
}

var statusTransitions = map[domain.ReservationStatus][]domain.ReservationStatus{
	domain.ReservationPending:   {domain.ReservationConfirmed, domain.ReservationCancelled},
	domain.ReservationConfirmed: {domain.ReservationActive, domain.ReservationCancelled},
	domain.ReservationActive:    {domain.ReservationCompleted, domain.ReservationCancelled},
}

// UpdateStatus applies a caller-driven transition:
// pending → confirmed → active → completed, cancelled from any
// non-terminal state. Only cancelled reservations leave the conflict set.
func (s *Service) UpdateStatus(ctx context.Context, orgID, id int64, status domain.ReservationStatus) (*domain.Reservation, error) {
	if !status.Valid() {
		return nil, ErrValidation
	}

	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	if r.OrgID != orgID {
		return nil, ErrNotFound
	}

	allowed := false
	for _, next := range statusTransitions[r.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, ErrInvalidStatusTransition
	}

	if err := s.reservations.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.reservations.GetByID(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, orgID, id int64) (*domain.Reservation, error) {
	r, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err)
	}
	if r.OrgID != orgID {
		return nil, ErrNotFound
	}
	return r, nil
}

func (s *Service) ListByOrg(ctx context.Context, orgID int64) ([]domain.Reservation, error) {
	return s.reservations.ListByOrg(ctx, orgID)
}

// requireReservable checks every selected asset exists in the org and is
// in active status.
func (s *Service) requireReservable(ctx context.Context, orgID int64, slots []int64) error {
	distinct := uniqueIDs(slots)
	assets, err := s.assets.GetByIDs(ctx, orgID, distinct)
	if err != nil {
		return err
	}
	if len(assets) != len(distinct) {
		return ErrAssetNotFound
	}
	for _, a := range assets {
		if !a.Status.Reservable() {
			return ErrAssetNotReservable
		}
	}
	return nil
}

// aggregateSlots collapses the expansion multiset into one row per asset
// with a summed quantity. Total committed quantity per asset stays
// reconstructible for future availability checks.
func aggregateSlots(slots []int64) []domain.ReservationAsset {
	counts := make(map[int64]int, len(slots))
	order := make([]int64, 0, len(slots))
	for _, id := range slots {
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}

	out := make([]domain.ReservationAsset, 0, len(order))
	for _, id := range order {
		out = append(out, domain.ReservationAsset{AssetID: id, Quantity: counts[id]})
	}
	return out
}

func hasConflicts(availability []AssetAvailability) bool {
	for _, a := range availability {
		if !a.IsAvailable {
			return true
		}
	}
	return false
}

func notFoundAs(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// parseDateRange parses inclusive YYYY-MM-DD bounds, normalized to
// midnight UTC. end before start is a validation error; equal is fine.
func parseDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrValidation
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, ErrValidation
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrValidation
	}
	return start.UTC(), end.UTC(), nil
}
