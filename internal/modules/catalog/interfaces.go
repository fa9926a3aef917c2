package catalog

import (
	"context"

	"gearbook/internal/domain"
)

type AssetRepository interface {
	Create(ctx context.Context, a *domain.Asset) error
	GetByID(ctx context.Context, id int64) (*domain.Asset, error)
	GetByIDs(ctx context.Context, orgID int64, ids []int64) ([]domain.Asset, error)
	ListByOrg(ctx context.Context, orgID int64) ([]domain.Asset, error)
	Update(ctx context.Context, a *domain.Asset) error
	Delete(ctx context.Context, id int64) error
}

type KitRepository interface {
	Create(ctx context.Context, k *domain.Kit) error
	GetByID(ctx context.Context, id int64) (*domain.Kit, error)
	ListByOrg(ctx context.Context, orgID int64) ([]domain.Kit, error)
	Update(ctx context.Context, k *domain.Kit) error
	Delete(ctx context.Context, id int64) error
}
