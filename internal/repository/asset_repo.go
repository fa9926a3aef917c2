package repository

import (
	"context"
	"time"

	"gearbook/internal/domain"

	"gorm.io/gorm"
)

type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

type assetModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	OrgID     int64     `gorm:"column:org_id;index"`
	Name      string    `gorm:"column:name"`
	Status    string    `gorm:"column:status"`
	Category  string    `gorm:"column:category"`
	Quantity  int       `gorm:"column:quantity"`
	Location  *string   `gorm:"column:location"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (assetModel) TableName() string { return "assets" }

func toDomainAsset(m assetModel) *domain.Asset {
	var location string
	if m.Location != nil {
		location = *m.Location
	}

	return &domain.Asset{
		ID:        m.ID,
		OrgID:     m.OrgID,
		Name:      m.Name,
		Status:    domain.AssetStatus(m.Status),
		Category:  m.Category,
		Quantity:  m.Quantity,
		Location:  location,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toAssetModel(a *domain.Asset) assetModel {
	var location *string
	if a.Location != "" {
		v := a.Location
		location = &v
	}

	return assetModel{
		ID:        a.ID,
		OrgID:     a.OrgID,
		Name:      a.Name,
		Status:    string(a.Status),
		Category:  a.Category,
		Quantity:  a.Quantity,
		Location:  location,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (r *AssetRepository) Create(ctx context.Context, a *domain.Asset) error {
	m := toAssetModel(a)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAsset(m)
	return nil
}

func (r *AssetRepository) GetByID(ctx context.Context, id int64) (*domain.Asset, error) {
	var m assetModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAsset(m), nil
}

// GetByIDs returns the org's assets matching ids. Missing ids are simply
// absent from the result; callers decide whether that is an error.
func (r *AssetRepository) GetByIDs(ctx context.Context, orgID int64, ids []int64) ([]domain.Asset, error) {
	if len(ids) == 0 {
		return []domain.Asset{}, nil
	}

	var models []assetModel
	tx := r.db.WithContext(ctx).
		Where("org_id = ? AND id IN ?", orgID, ids).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Asset, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainAsset(m))
	}
	return out, nil
}

func (r *AssetRepository) ListByOrg(ctx context.Context, orgID int64) ([]domain.Asset, error) {
	var models []assetModel
	tx := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("name").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Asset, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainAsset(m))
	}
	return out, nil
}

func (r *AssetRepository) Update(ctx context.Context, a *domain.Asset) error {
	m := toAssetModel(a)
	tx := r.db.WithContext(ctx).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAsset(m)
	return nil
}

func (r *AssetRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&assetModel{}, id).Error
}
