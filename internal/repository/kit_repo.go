package repository

import (
	"context"
	"time"

	"gearbook/internal/domain"

	"gorm.io/gorm"
)

type KitRepository struct {
	db *gorm.DB
}

func NewKitRepository(db *gorm.DB) *KitRepository {
	return &KitRepository{db: db}
}

type kitModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	OrgID     int64     `gorm:"column:org_id;index"`
	Name      string    `gorm:"column:name"`
	Category  *string   `gorm:"column:category"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (kitModel) TableName() string { return "kits" }

type kitItemModel struct {
	ID       int64 `gorm:"column:id;primaryKey"`
	KitID    int64 `gorm:"column:kit_id;index"`
	AssetID  int64 `gorm:"column:asset_id"`
	Quantity int   `gorm:"column:quantity"`
}

func (kitItemModel) TableName() string { return "kit_items" }

func toDomainKit(m kitModel, items []kitItemModel) *domain.Kit {
	var category string
	if m.Category != nil {
		category = *m.Category
	}

	k := &domain.Kit{
		ID:        m.ID,
		OrgID:     m.OrgID,
		Name:      m.Name,
		Category:  category,
		Items:     make([]domain.KitItem, 0, len(items)),
		CreatedAt: m.CreatedAt,
	}
	for _, it := range items {
		k.Items = append(k.Items, domain.KitItem{
			ID:       it.ID,
			KitID:    it.KitID,
			AssetID:  it.AssetID,
			Quantity: it.Quantity,
		})
	}
	return k
}

// Create persists the kit and its items in one transaction.
func (r *KitRepository) Create(ctx context.Context, k *domain.Kit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category *string
		if k.Category != "" {
			v := k.Category
			category = &v
		}

		m := kitModel{OrgID: k.OrgID, Name: k.Name, Category: category}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		for i := range k.Items {
			it := kitItemModel{
				KitID:    m.ID,
				AssetID:  k.Items[i].AssetID,
				Quantity: k.Items[i].Quantity,
			}
			if err := tx.Create(&it).Error; err != nil {
				return err
			}
			k.Items[i].ID = it.ID
			k.Items[i].KitID = m.ID
		}

		k.ID = m.ID
		k.CreatedAt = m.CreatedAt
		return nil
	})
}

func (r *KitRepository) GetByID(ctx context.Context, id int64) (*domain.Kit, error) {
	var m kitModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}

	var items []kitItemModel
	if err := r.db.WithContext(ctx).Where("kit_id = ?", id).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return toDomainKit(m, items), nil
}

// GetByIDs returns the org's kits, items included, matching ids. Missing
// ids are absent from the result.
func (r *KitRepository) GetByIDs(ctx context.Context, orgID int64, ids []int64) ([]domain.Kit, error) {
	if len(ids) == 0 {
		return []domain.Kit{}, nil
	}

	var models []kitModel
	tx := r.db.WithContext(ctx).
		Where("org_id = ? AND id IN ?", orgID, ids).
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Kit, 0, len(models))
	for _, m := range models {
		var items []kitItemModel
		if err := r.db.WithContext(ctx).Where("kit_id = ?", m.ID).Order("id").Find(&items).Error; err != nil {
			return nil, err
		}
		out = append(out, *toDomainKit(m, items))
	}
	return out, nil
}

func (r *KitRepository) ListByOrg(ctx context.Context, orgID int64) ([]domain.Kit, error) {
	var models []kitModel
	tx := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("name").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Kit, 0, len(models))
	for _, m := range models {
		var items []kitItemModel
		if err := r.db.WithContext(ctx).Where("kit_id = ?", m.ID).Order("id").Find(&items).Error; err != nil {
			return nil, err
		}
		out = append(out, *toDomainKit(m, items))
	}
	return out, nil
}

// Update rewrites the kit row and replaces its items in one transaction.
func (r *KitRepository) Update(ctx context.Context, k *domain.Kit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category *string
		if k.Category != "" {
			v := k.Category
			category = &v
		}

		if err := tx.Model(&kitModel{}).Where("id = ?", k.ID).Updates(map[string]any{
			"name":     k.Name,
			"category": category,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("kit_id = ?", k.ID).Delete(&kitItemModel{}).Error; err != nil {
			return err
		}

		for i := range k.Items {
			it := kitItemModel{
				KitID:    k.ID,
				AssetID:  k.Items[i].AssetID,
				Quantity: k.Items[i].Quantity,
			}
			if err := tx.Create(&it).Error; err != nil {
				return err
			}
			k.Items[i].ID = it.ID
			k.Items[i].KitID = k.ID
		}
		return nil
	})
}

func (r *KitRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kit_id = ?", id).Delete(&kitItemModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&kitModel{}, id).Error
	})
}
