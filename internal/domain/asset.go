package domain

import "time"

type AssetStatus string

const (
	AssetActive      AssetStatus = "active"
	AssetMaintenance AssetStatus = "maintenance"
	AssetRetired     AssetStatus = "retired"
	AssetSold        AssetStatus = "sold"
)

// Reservable reports whether the asset may appear in new reservations.
// Assets in maintenance, retired or sold are kept for history but are
// not bookable.
func (s AssetStatus) Reservable() bool { return s == AssetActive }

func (s AssetStatus) Valid() bool {
	switch s {
	case AssetActive, AssetMaintenance, AssetRetired, AssetSold:
		return true
	}
	return false
}

type Asset struct {
	ID        int64       `json:"id"`
	OrgID     int64       `json:"org_id"`
	Name      string      `json:"name" validate:"required"`
	Status    AssetStatus `json:"status"`
	Category  string      `json:"category"`
	Quantity  int         `json:"quantity" validate:"gte=1"`
	Location  string      `json:"location,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
