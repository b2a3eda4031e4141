// Package leads provides the lead pipeline bounded context module.
package leads

import (
	apphttp "blocarch_backend/internal/http"
	"blocarch_backend/internal/leads/handler"
	"blocarch_backend/internal/leads/repository"
	"blocarch_backend/internal/leads/service"
	"blocarch_backend/platform/db"
	"blocarch_backend/platform/logger"
	"blocarch_backend/platform/validator"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	repo    *repository.Repository
	svc     *service.Service
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(pool db.Pool, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, log)

	return &Module{
		handler: handler.New(svc, val),
		repo:    repo,
		svc:     svc,
	}
}

func (m *Module) Name() string { return "leads" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.API)
}

// Repository exposes the lead repository for cross-module adapters.
func (m *Module) Repository() *repository.Repository { return m.repo }
