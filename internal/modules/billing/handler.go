package billing

import (
	"errors"
	"net/http"
	"strconv"

	"gearbook/internal/domain"
	"gearbook/internal/modules/numbering"
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
	rg.POST("/invoices", h.kindHandler(domain.DocumentInvoice, h.create))
	rg.GET("/invoices", h.kindHandler(domain.DocumentInvoice, h.list))
	rg.GET("/invoices/:id", h.kindHandler(domain.DocumentInvoice, h.get))
	rg.PATCH("/invoices/:id/status", h.kindHandler(domain.DocumentInvoice, h.updateStatus))

	rg.POST("/quotations", h.kindHandler(domain.DocumentQuotation, h.create))
	rg.GET("/quotations", h.kindHandler(domain.DocumentQuotation, h.list))
	rg.GET("/quotations/:id", h.kindHandler(domain.DocumentQuotation, h.get))
	rg.PATCH("/quotations/:id/status", h.kindHandler(domain.DocumentQuotation, h.updateStatus))
}

func (h *Handler) kindHandler(kind domain.DocumentKind, fn func(c *gin.Context, kind domain.DocumentKind)) gin.HandlerFunc {
	return func(c *gin.Context) { fn(c, kind) }
}

func (h *Handler) create(c *gin.Context, kind domain.DocumentKind) {
	var req CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.CreateDocument(c.Request.Context(), c.GetInt64("org_id"), c.GetInt64("user_id"), kind, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"document": d})
}

func (h *Handler) list(c *gin.Context, kind domain.DocumentKind) {
	documents, err := h.service.ListDocuments(c.Request.Context(), c.GetInt64("org_id"), kind)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"documents": documents})
}

func (h *Handler) get(c *gin.Context, kind domain.DocumentKind) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid document ID")
		return
	}

	d, err := h.service.GetDocument(c.Request.Context(), c.GetInt64("org_id"), id, kind)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"document": d})
}

func (h *Handler) updateStatus(c *gin.Context, kind domain.DocumentKind) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid document ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.UpdateStatus(c.Request.Context(), c.GetInt64("org_id"), id, kind, domain.DocumentStatus(req.Status))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"document": d})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid document request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Document not found")
	case errors.Is(err, numbering.ErrAllocationExhausted):
		// high contention on the number sequence; the request itself is
		// fine and may be retried
		response.Error(c, http.StatusServiceUnavailable, "NUMBER_ALLOCATION_EXHAUSTED", "Could not allocate a document number, try again")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to process document request")
	}
}
