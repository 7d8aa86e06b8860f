// Package numbers provides the number parsing and formatting module.
package numbers

import (
	apphttp "phonebridge/internal/http"
	"phonebridge/internal/numbers/handler"
	"phonebridge/internal/numbers/service"
	"phonebridge/platform/config"
	"phonebridge/platform/logger"
	"phonebridge/platform/validator"
)

// Module is the numbers module implementing apphttp.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the numbers module.
func NewModule(cfg config.PhoneConfig, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(cfg, val, log)
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "numbers"
}

// Service returns the service layer for the channel dispatcher.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts number routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.V1.Group("/numbers")
	group.POST("/parse", m.handler.Parse)
	group.POST("/format", m.handler.Format)
}

var _ apphttp.Module = (*Module)(nil)
