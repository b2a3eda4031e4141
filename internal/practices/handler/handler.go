package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blocarch_backend/internal/practices/service"
	"blocarch_backend/platform/httpkit"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/practices", h.List)
	rg.GET("/practices/:id", h.GetDetail)
	rg.GET("/dashboard/summary", h.DashboardSummary)
}

func (h *Handler) List(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}

	resp, err := h.svc.List(c.Request.Context(), service.ListQuery{
		Search: c.Query("q"),
		Source: c.Query("source"),
		Staff:  c.Query("staff"),
		Page:   page,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

func (h *Handler) GetDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}

	resp, err := h.svc.GetDetail(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}

func (h *Handler) DashboardSummary(c *gin.Context) {
	resp, err := h.svc.DashboardSummary(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}
