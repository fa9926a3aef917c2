package reservation

import "gearbook/internal/domain"

type AvailabilityRequest struct {
	AssetIDs             []int64 `json:"asset_ids"`
	KitIDs               []int64 `json:"kit_ids"`
	StartDate            string  `json:"start_date" binding:"required"`
	EndDate              string  `json:"end_date" binding:"required"`
	ExcludeReservationID int64   `json:"exclude_reservation_id"`
}

type ConflictDetail struct {
	ReservationID int64  `json:"reservation_id"`
	Title         string `json:"title"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	Status        string `json:"status"`
	Quantity      int    `json:"quantity"`
}

type AssetAvailability struct {
	AssetID     int64            `json:"asset_id"`
	AssetName   string           `json:"asset_name"`
	IsAvailable bool             `json:"is_available"`
	Conflicts   []ConflictDetail `json:"conflicts"`
}

type CreateReservationRequest struct {
	Title       string  `json:"title" binding:"required"`
	Project     string  `json:"project"`
	Description string  `json:"description"`
	Notes       string  `json:"notes"`
	StartDate   string  `json:"start_date" binding:"required"`
	EndDate     string  `json:"end_date" binding:"required"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Location    string  `json:"location"`
	Priority    string  `json:"priority"`
	AssetIDs    []int64 `json:"asset_ids"`
	KitIDs      []int64 `json:"kit_ids"`

	// Override confirms booking despite reported conflicts.
	Override bool `json:"override"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func toConflictDetails(conflicts []domain.ConflictingReservation) []ConflictDetail {
	out := make([]ConflictDetail, 0, len(conflicts))
	for _, c := range conflicts {
		out = append(out, ConflictDetail{
			ReservationID: c.ReservationID,
			Title:         c.Title,
			StartDate:     c.StartDate.Format("2006-01-02"),
			EndDate:       c.EndDate.Format("2006-01-02"),
			Status:        string(c.Status),
			Quantity:      c.Quantity,
		})
	}
	return out
}
