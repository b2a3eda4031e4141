// Package practices provides the practice directory bounded context module.
package practices

import (
	apphttp "blocarch_backend/internal/http"
	"blocarch_backend/internal/practices/handler"
	"blocarch_backend/internal/practices/repository"
	"blocarch_backend/internal/practices/service"
	"blocarch_backend/platform/db"
	"blocarch_backend/platform/logger"
)

// Module is the practices bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	svc     *service.Service
}

// NewModule creates and initializes the practices module. The lead port is
// injected so this context never imports the leads packages directly.
func NewModule(pool db.Pool, leadPort service.LeadPort, log *logger.Logger) *Module {
	svc := service.New(repository.New(pool), leadPort, log)

	return &Module{
		handler: handler.New(svc),
		svc:     svc,
	}
}

func (m *Module) Name() string { return "practices" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.API)
}

// Service exposes the practice service for the import command.
func (m *Module) Service() *service.Service { return m.svc }
