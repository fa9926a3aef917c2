package domain

import "time"

// Organization is the tenant boundary. Every asset, kit, reservation
// and document belongs to exactly one organization.
type Organization struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}
