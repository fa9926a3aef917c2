package reservation

import (
	"net/http"
	"strconv"

	"gearbook/internal/domain"
	"gearbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations", h.Create)
	rg.GET("/reservations", h.List)
	rg.GET("/reservations/:id", h.Get)
	rg.PUT("/reservations/:id", h.Update)
	rg.PATCH("/reservations/:id/status", h.UpdateStatus)
	rg.POST("/reservations/availability", h.CheckAvailability)
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	availability, err := h.service.CheckAvailabilityRequest(c.Request.Context(), c.GetInt64("org_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"availability": availability})
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, warn, err := h.service.Create(c.Request.Context(), c.GetInt64("org_id"), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if warn != nil {
		// Not an error: the booking was withheld pending an explicit
		// override confirmation.
		response.Success(c, http.StatusOK, gin.H{
			"booked":            false,
			"requires_override": true,
			"availability":      warn.Availability,
		})
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"booked":      true,
		"reservation": r,
	})
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, warn, err := h.service.Update(c.Request.Context(), c.GetInt64("org_id"), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if warn != nil {
		response.Success(c, http.StatusOK, gin.H{
			"booked":            false,
			"requires_override": true,
			"availability":      warn.Availability,
		})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"booked":      true,
		"reservation": r,
	})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	r, err := h.service.UpdateStatus(c.Request.Context(), c.GetInt64("org_id"), id, domain.ReservationStatus(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid reservation ID")
		return
	}

	r, err := h.service.GetByID(c.Request.Context(), c.GetInt64("org_id"), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": r})
}

func (h *Handler) List(c *gin.Context) {
	reservations, err := h.service.ListByOrg(c.Request.Context(), c.GetInt64("org_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": reservations})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation request")
	case ErrEmptySelection:
		response.Error(c, http.StatusBadRequest, "EMPTY_SELECTION", "No assets selected to reserve")
	case ErrAssetNotFound:
		response.Error(c, http.StatusNotFound, "ASSET_NOT_FOUND", "One or more assets do not exist")
	case ErrAssetNotReservable:
		response.Error(c, http.StatusBadRequest, "ASSET_NOT_RESERVABLE", "One or more assets are not active")
	case ErrKitNotFound:
		response.Error(c, http.StatusNotFound, "KIT_NOT_FOUND", "One or more kits do not exist")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case ErrInvalidStatusTransition:
		response.Error(c, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Requested status transition is not allowed")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process reservation request")
	}
}
