package repository

import (
	"context"
	"time"

	"gearbook/internal/domain"

	"gorm.io/gorm"
)

type ReservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

type reservationModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	OrgID       int64      `gorm:"column:org_id;index"`
	Title       string     `gorm:"column:title"`
	Project     *string    `gorm:"column:project"`
	Description *string    `gorm:"column:description"`
	Notes       *string    `gorm:"column:notes"`
	StartDate   time.Time  `gorm:"column:start_date;index"`
	EndDate     time.Time  `gorm:"column:end_date;index"`
	StartTime   *string    `gorm:"column:start_time"`
	EndTime     *string    `gorm:"column:end_time"`
	Location    *string    `gorm:"column:location"`
	Status      string     `gorm:"column:status"`
	Priority    string     `gorm:"column:priority"`
	CreatedBy   int64      `gorm:"column:created_by"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	CancelledAt *time.Time `gorm:"column:cancelled_at"`
}

func (reservationModel) TableName() string { return "reservations" }

type reservationAssetModel struct {
	ID            int64 `gorm:"column:id;primaryKey"`
	ReservationID int64 `gorm:"column:reservation_id;index"`
	AssetID       int64 `gorm:"column:asset_id;index"`
	Quantity      int   `gorm:"column:quantity"`
}

func (reservationAssetModel) TableName() string { return "reservation_assets" }

func strOrEmpty(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func toDomainReservation(m reservationModel, assets []reservationAssetModel) *domain.Reservation {
	r := &domain.Reservation{
		ID:          m.ID,
		OrgID:       m.OrgID,
		Title:       m.Title,
		Project:     strOrEmpty(m.Project),
		Description: strOrEmpty(m.Description),
		Notes:       strOrEmpty(m.Notes),
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		StartTime:   strOrEmpty(m.StartTime),
		EndTime:     strOrEmpty(m.EndTime),
		Location:    strOrEmpty(m.Location),
		Status:      domain.ReservationStatus(m.Status),
		Priority:    domain.ReservationPriority(m.Priority),
		CreatedBy:   m.CreatedBy,
		Assets:      make([]domain.ReservationAsset, 0, len(assets)),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		CancelledAt: m.CancelledAt,
	}
	for _, a := range assets {
		r.Assets = append(r.Assets, domain.ReservationAsset{
			ID:            a.ID,
			ReservationID: a.ReservationID,
			AssetID:       a.AssetID,
			Quantity:      a.Quantity,
		})
	}
	return r
}

func toReservationModel(r *domain.Reservation) reservationModel {
	return reservationModel{
		ID:          r.ID,
		OrgID:       r.OrgID,
		Title:       r.Title,
		Project:     strOrNil(r.Project),
		Description: strOrNil(r.Description),
		Notes:       strOrNil(r.Notes),
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		StartTime:   strOrNil(r.StartTime),
		EndTime:     strOrNil(r.EndTime),
		Location:    strOrNil(r.Location),
		Status:      string(r.Status),
		Priority:    string(r.Priority),
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		CancelledAt: r.CancelledAt,
	}
}

// Create persists the reservation and its asset rows in one transaction.
func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toReservationModel(res)
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		for i := range res.Assets {
			a := reservationAssetModel{
				ReservationID: m.ID,
				AssetID:       res.Assets[i].AssetID,
				Quantity:      res.Assets[i].Quantity,
			}
			if err := tx.Create(&a).Error; err != nil {
				return err
			}
			res.Assets[i].ID = a.ID
			res.Assets[i].ReservationID = m.ID
		}

		res.ID = m.ID
		res.CreatedAt = m.CreatedAt
		res.UpdatedAt = m.UpdatedAt
		return nil
	})
}

// Update rewrites the reservation row and replaces its asset rows.
func (r *ReservationRepository) Update(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := toReservationModel(res)
		if err := tx.Save(&m).Error; err != nil {
			return err
		}

		if err := tx.Where("reservation_id = ?", res.ID).Delete(&reservationAssetModel{}).Error; err != nil {
			return err
		}
		for i := range res.Assets {
			a := reservationAssetModel{
				ReservationID: res.ID,
				AssetID:       res.Assets[i].AssetID,
				Quantity:      res.Assets[i].Quantity,
			}
			if err := tx.Create(&a).Error; err != nil {
				return err
			}
			res.Assets[i].ID = a.ID
			res.Assets[i].ReservationID = res.ID
		}

		res.UpdatedAt = m.UpdatedAt
		return nil
	})
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	var m reservationModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}

	var assets []reservationAssetModel
	if err := r.db.WithContext(ctx).Where("reservation_id = ?", id).Order("id").Find(&assets).Error; err != nil {
		return nil, err
	}
	return toDomainReservation(m, assets), nil
}

func (r *ReservationRepository) ListByOrg(ctx context.Context, orgID int64) ([]domain.Reservation, error) {
	var models []reservationModel
	tx := r.db.WithContext(ctx).
		Where("org_id = ?", orgID).
		Order("start_date DESC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Reservation, 0, len(models))
	for _, m := range models {
		var assets []reservationAssetModel
		if err := r.db.WithContext(ctx).Where("reservation_id = ?", m.ID).Order("id").Find(&assets).Error; err != nil {
			return nil, err
		}
		out = append(out, *toDomainReservation(m, assets))
	}
	return out, nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	updates := map[string]any{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}
	if status == domain.ReservationCancelled {
		now := time.Now().UTC()
		updates["cancelled_at"] = &now
	}
	return r.db.WithContext(ctx).
		Model(&reservationModel{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// GetConflicts returns non-cancelled reservations holding the asset whose
// inclusive date range overlaps [start, end]. excludeID > 0 removes one
// reservation from consideration (self-exclusion while editing).
func (r *ReservationRepository) GetConflicts(ctx context.Context, orgID, assetID int64, start, end time.Time, excludeID int64) ([]domain.ConflictingReservation, error) {
	q := `
SELECT r.id AS reservation_id, r.title, r.start_date, r.end_date, r.status, ra.quantity
FROM reservations r
JOIN reservation_assets ra ON ra.reservation_id = r.id
WHERE r.org_id = ?
  AND ra.asset_id = ?
  AND r.status <> 'cancelled'
  AND r.start_date <= ?
  AND ? <= r.end_date
  AND (? = 0 OR r.id <> ?)
ORDER BY r.start_date, r.id
`
	var rows []struct {
		ReservationID int64     `gorm:"column:reservation_id"`
		Title         string    `gorm:"column:title"`
		StartDate     time.Time `gorm:"column:start_date"`
		EndDate       time.Time `gorm:"column:end_date"`
		Status        string    `gorm:"column:status"`
		Quantity      int       `gorm:"column:quantity"`
	}
	tx := r.db.WithContext(ctx).Raw(q, orgID, assetID, end, start, excludeID, excludeID).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.ConflictingReservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.ConflictingReservation{
			ReservationID: row.ReservationID,
			Title:         row.Title,
			StartDate:     row.StartDate,
			EndDate:       row.EndDate,
			Status:        domain.ReservationStatus(row.Status),
			Quantity:      row.Quantity,
		})
	}
	return out, nil
}
