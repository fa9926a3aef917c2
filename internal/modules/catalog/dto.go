package catalog

type CreateAssetRequest struct {
	Name     string `json:"name" binding:"required"`
	Status   string `json:"status" validate:"omitempty,oneof=active maintenance retired sold"`
	Category string `json:"category"`
	Quantity int    `json:"quantity" validate:"gte=0"`
	Location string `json:"location"`
}

type UpdateAssetRequest struct {
	Name     string `json:"name" binding:"required"`
	Status   string `json:"status" binding:"required" validate:"oneof=active maintenance retired sold"`
	Category string `json:"category"`
	Quantity int    `json:"quantity" binding:"required" validate:"gte=1"`
	Location string `json:"location"`
}

type KitItemRequest struct {
	AssetID  int64 `json:"asset_id" binding:"required"`
	Quantity int   `json:"quantity"`
}

type CreateKitRequest struct {
	Name     string           `json:"name" binding:"required"`
	Category string           `json:"category"`
	Items    []KitItemRequest `json:"items"`
}
