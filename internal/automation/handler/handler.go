package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"blocarch_backend/internal/automation/service"
	"blocarch_backend/platform/httpkit"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/n8n/leads", h.Feed)
	rg.GET("/automation/rules", h.Rules)
}

func (h *Handler) Feed(c *gin.Context) {
	// A missing or non-numeric limit falls back to the default rather than
	// erroring, so a misconfigured workflow still gets data.
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			limit = v
		}
	}

	resp, err := h.svc.Feed(c.Request.Context(), c.Query("status"), limit)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

func (h *Handler) Rules(c *gin.Context) {
	rules, err := h.svc.Rules(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"items": rules, "count": len(rules)})
}
