package handler

import (
	"errors"
	"io"
	"net/http"

	"phonebridge/internal/channel/service"
	"phonebridge/platform/apperr"
	"phonebridge/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const msgInvalidArguments = "arguments must be a JSON object"

// Handler exposes the method dispatcher over HTTP.
type Handler struct {
	dispatcher *service.Dispatcher
}

// New creates a new channel handler.
func New(dispatcher *service.Dispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

// Methods lists the callable method names.
// GET /api/v1/channel
func (h *Handler) Methods(c *gin.Context) {
	httpkit.OK(c, gin.H{"methods": h.dispatcher.Methods()})
}

// Call invokes one method. The body is the argument object; an empty body means no arguments.
// POST /api/v1/channel/:method
func (h *Handler) Call(c *gin.Context) {
	args := map[string]interface{}{}
	if err := c.ShouldBindJSON(&args); err != nil && !errors.Is(err, io.EOF) {
		httpkit.Error(c, http.StatusBadRequest, apperr.CodeInvalidParameters, msgInvalidArguments)
		return
	}

	result, err := h.dispatcher.Call(c.Request.Context(), c.Param("method"), args)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
