package domain

import "time"

// Kit is a named, reusable bundle of assets reservable as a unit.
type Kit struct {
	ID        int64     `json:"id"`
	OrgID     int64     `json:"org_id"`
	Name      string    `json:"name" validate:"required"`
	Category  string    `json:"category,omitempty"`
	Items     []KitItem `json:"items"`
	CreatedAt time.Time `json:"created_at"`
}

// KitItem binds an asset into a kit with a multiplicity. An asset appears
// at most once per kit.
type KitItem struct {
	ID       int64 `json:"id"`
	KitID    int64 `json:"kit_id"`
	AssetID  int64 `json:"asset_id" validate:"required"`
	Quantity int   `json:"quantity" validate:"gte=1"`
}
