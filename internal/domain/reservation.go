package domain

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationActive    ReservationStatus = "active"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationActive,
		ReservationCompleted, ReservationCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s ReservationStatus) Terminal() bool {
	return s == ReservationCompleted || s == ReservationCancelled
}

type ReservationPriority string

const (
	PriorityLow      ReservationPriority = "low"
	PriorityNormal   ReservationPriority = "normal"
	PriorityHigh     ReservationPriority = "high"
	PriorityCritical ReservationPriority = "critical"
)

func (p ReservationPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Reservation books assets over an inclusive date range. StartTime and
// EndTime are display-only times of day; the overlap rule works on dates.
type Reservation struct {
	ID          int64               `json:"id"`
	OrgID       int64               `json:"org_id"`
	Title       string              `json:"title" validate:"required"`
	Project     string              `json:"project,omitempty"`
	Description string              `json:"description,omitempty"`
	Notes       string              `json:"notes,omitempty"`
	StartDate   time.Time           `json:"start_date"`
	EndDate     time.Time           `json:"end_date"`
	StartTime   string              `json:"start_time,omitempty"`
	EndTime     string              `json:"end_time,omitempty"`
	Location    string              `json:"location,omitempty"`
	Status      ReservationStatus   `json:"status"`
	Priority    ReservationPriority `json:"priority"`
	CreatedBy   int64               `json:"created_by"`
	Assets      []ReservationAsset  `json:"assets"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	CancelledAt *time.Time          `json:"cancelled_at,omitempty"`
}

// ReservationAsset records that a reservation consumes Quantity units of
// an asset over the reservation's date range.
type ReservationAsset struct {
	ID            int64 `json:"id"`
	ReservationID int64 `json:"reservation_id"`
	AssetID       int64 `json:"asset_id"`
	Quantity      int   `json:"quantity"`
}

// ConflictingReservation is one existing booking that overlaps a
// requested range for a given asset.
type ConflictingReservation struct {
	ReservationID int64             `json:"reservation_id"`
	Title         string            `json:"title"`
	StartDate     time.Time         `json:"start_date"`
	EndDate       time.Time         `json:"end_date"`
	Status        ReservationStatus `json:"status"`
	Quantity      int               `json:"quantity"`
}
