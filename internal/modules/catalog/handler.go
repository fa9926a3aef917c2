package catalog

import (
	"net/http"
	"strconv"

	"gearbook/internal/pkg/response"
	"gearbook/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the catalog endpoints. Deleting assets or kits
// is restricted by ownerOnly; members can read and create.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, ownerOnly gin.HandlerFunc) {
	rg.POST("/assets", h.CreateAsset)
	rg.GET("/assets", h.ListAssets)
	rg.GET("/assets/:id", h.GetAsset)
	rg.PUT("/assets/:id", h.UpdateAsset)
	rg.DELETE("/assets/:id", ownerOnly, h.DeleteAsset)

	rg.POST("/kits", h.CreateKit)
	rg.GET("/kits", h.ListKits)
	rg.GET("/kits/:id", h.GetKit)
	rg.PUT("/kits/:id", h.UpdateKit)
	rg.DELETE("/kits/:id", ownerOnly, h.DeleteKit)
}

func (h *Handler) CreateAsset(c *gin.Context) {
	var req CreateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid asset fields", errs)
		return
	}

	a, err := h.service.CreateAsset(c.Request.Context(), c.GetInt64("org_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"asset": a})
}

func (h *Handler) ListAssets(c *gin.Context) {
	assets, err := h.service.ListAssets(c.Request.Context(), c.GetInt64("org_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"assets": assets})
}

func (h *Handler) GetAsset(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid asset ID")
		return
	}

	a, err := h.service.GetAsset(c.Request.Context(), c.GetInt64("org_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"asset": a})
}

func (h *Handler) UpdateAsset(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid asset ID")
		return
	}

	var req UpdateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid asset fields", errs)
		return
	}

	a, err := h.service.UpdateAsset(c.Request.Context(), c.GetInt64("org_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"asset": a})
}

func (h *Handler) DeleteAsset(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid asset ID")
		return
	}

	if err := h.service.DeleteAsset(c.Request.Context(), c.GetInt64("org_id"), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) CreateKit(c *gin.Context) {
	var req CreateKitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	k, err := h.service.CreateKit(c.Request.Context(), c.GetInt64("org_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"kit": k})
}

func (h *Handler) ListKits(c *gin.Context) {
	kits, err := h.service.ListKits(c.Request.Context(), c.GetInt64("org_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"kits": kits})
}

func (h *Handler) GetKit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid kit ID")
		return
	}

	k, err := h.service.GetKit(c.Request.Context(), c.GetInt64("org_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"kit": k})
}

func (h *Handler) UpdateKit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid kit ID")
		return
	}

	var req CreateKitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	k, err := h.service.UpdateKit(c.Request.Context(), c.GetInt64("org_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"kit": k})
}

func (h *Handler) DeleteKit(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid kit ID")
		return
	}

	if err := h.service.DeleteKit(c.Request.Context(), c.GetInt64("org_id"), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid catalog request")
	case ErrDuplicateKitItem:
		response.Error(c, http.StatusBadRequest, "DUPLICATE_KIT_ITEM", "An asset may appear only once per kit")
	case ErrAssetNotFound:
		response.Error(c, http.StatusNotFound, "ASSET_NOT_FOUND", "One or more assets do not exist")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process catalog request")
	}
}
