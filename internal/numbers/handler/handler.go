package handler

import (
	"net/http"

	"phonebridge/internal/numbers/service"
	"phonebridge/internal/numbers/transport"
	"phonebridge/platform/apperr"
	"phonebridge/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for number parsing and formatting.
type Handler struct {
	svc *service.Service
}

// New creates a new numbers handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Parse validates a number and returns its layouts.
// POST /api/v1/numbers/parse
func (h *Handler) Parse(c *gin.Context) {
	var req transport.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeInvalidParameters, msgInvalidRequest)
		return
	}

	result, err := h.svc.Parse(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Format lays out partially typed input.
// POST /api/v1/numbers/format
func (h *Handler) Format(c *gin.Context) {
	var req transport.FormatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeInvalidParameters, msgInvalidRequest)
		return
	}

	result, err := h.svc.Format(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
