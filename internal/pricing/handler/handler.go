package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"pricebook_backend/internal/pricing/service"
	"pricebook_backend/internal/pricing/transport"
	"pricebook_backend/platform/httpkit"
	"pricebook_backend/platform/validator"
)

// Handler handles HTTP requests for pricing lookups.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const msgInvalidRequest = "invalid request"

// New creates a new pricing handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// GetCasePricing resolves the price list for the customer behind a case.
// GET /api/v1/pricing/case/:reference
func (h *Handler) GetCasePricing(c *gin.Context) {
	reference := c.Param("reference")

	result, err := h.svc.GetPricing(c.Request.Context(), reference)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetBulkPricing resolves price lists for a batch of external customer ids.
// GET /api/v1/public/pricing?uuids=a,b,c
func (h *Handler) GetBulkPricing(c *gin.Context) {
	var req transport.BulkPricingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	response := h.svc.GetPricingBulk(c.Request.Context(), strings.Split(req.UUIDs, ","))
	httpkit.JSON(c, bulkStatus(response), response)
}

// bulkStatus maps the bulk envelope to an HTTP status. Partial per-id errors
// still ride a 200; only a blank request or a top-level fault deviates.
func bulkStatus(response transport.BulkPricingResponse) int {
	if response.Success {
		return http.StatusOK
	}
	if response.Message == service.MsgInvalidUUIDs {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
