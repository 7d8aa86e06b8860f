package handler

import (
	"phonebridge/internal/regions/service"
	"phonebridge/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the region catalog.
type Handler struct {
	svc *service.Service
}

// New creates a new regions handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// List returns every supported region keyed by region code.
// GET /api/v1/regions
func (h *Handler) List(c *gin.Context) {
	catalog, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, catalog)
}
