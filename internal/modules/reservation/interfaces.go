package reservation

import (
	"context"
	"time"

	"gearbook/internal/domain"
)

type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) error
	Update(ctx context.Context, r *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListByOrg(ctx context.Context, orgID int64) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
	GetConflicts(ctx context.Context, orgID, assetID int64, start, end time.Time, excludeID int64) ([]domain.ConflictingReservation, error)
}

type AssetRepository interface {
	GetByIDs(ctx context.Context, orgID int64, ids []int64) ([]domain.Asset, error)
}

type KitRepository interface {
	GetByIDs(ctx context.Context, orgID int64, ids []int64) ([]domain.Kit, error)
}
