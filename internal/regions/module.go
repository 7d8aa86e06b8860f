// Package regions provides the supported-region catalog module.
package regions

import (
	apphttp "phonebridge/internal/http"
	"phonebridge/internal/regions/handler"
	"phonebridge/internal/regions/repository"
	"phonebridge/internal/regions/service"
	"phonebridge/platform/config"
	"phonebridge/platform/logger"
)

// Module is the regions module implementing apphttp.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the regions module. store may be nil to keep the catalog in memory only.
func NewModule(cfg config.CatalogConfig, store repository.Store, log *logger.Logger) (*Module, error) {
	overrides, err := config.LoadCatalogOverrides(cfg.GetCatalogOverridesFile())
	if err != nil {
		return nil, err
	}

	svc := service.New(cfg, overrides, store, log)
	return &Module{
		handler: handler.New(svc),
		service: svc,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "regions"
}

// Service returns the catalog service for the channel dispatcher and the worker.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts region routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.GET("/regions", m.handler.List)
}

var _ apphttp.Module = (*Module)(nil)
