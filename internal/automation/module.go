// Package automation provides the outreach automation bounded context:
// the n8n lead feed and the automation rule listing.
package automation

import (
	"blocarch_backend/internal/automation/handler"
	"blocarch_backend/internal/automation/ports"
	"blocarch_backend/internal/automation/repository"
	"blocarch_backend/internal/automation/service"
	apphttp "blocarch_backend/internal/http"
	"blocarch_backend/platform/db"
	"blocarch_backend/platform/logger"
)

// Module is the automation bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
}

// NewModule creates and initializes the automation module. The feed source
// is injected so this context never imports the leads packages directly.
func NewModule(pool db.Pool, feed ports.FeedSource, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(feed, repo, log)

	return &Module{handler: handler.New(svc)}
}

func (m *Module) Name() string { return "automation" }

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.API)
}
