// Package channel provides the named-method call surface shared by the HTTP
// API and the phonectl CLI.
package channel

import (
	"phonebridge/internal/channel/handler"
	"phonebridge/internal/channel/service"
	apphttp "phonebridge/internal/http"
	"phonebridge/platform/logger"
)

// Module is the channel module implementing apphttp.Module.
type Module struct {
	handler    *handler.Handler
	dispatcher *service.Dispatcher
}

// NewModule creates the channel module over the numbers and regions services.
func NewModule(numbers service.Numbers, regions service.Regions, log *logger.Logger) *Module {
	dispatcher := service.New(numbers, regions, log)
	return &Module{
		handler:    handler.New(dispatcher),
		dispatcher: dispatcher,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "channel"
}

// Dispatcher returns the method dispatcher for in-process callers.
func (m *Module) Dispatcher() *service.Dispatcher {
	return m.dispatcher
}

// RegisterRoutes mounts channel routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/channel", m.handler.Methods)
	ctx.V1.POST("/channel/:method", m.handler.Call)
}

var _ apphttp.Module = (*Module)(nil)
