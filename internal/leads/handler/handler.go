package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blocarch_backend/internal/leads/service"
	"blocarch_backend/internal/leads/transport"
	"blocarch_backend/platform/httpkit"
	"blocarch_backend/platform/validator"
)

const msgInvalidRequest = "invalid request"

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/leads/:id", h.GetDetail)
	rg.PATCH("/leads/:id", h.Update)
	rg.POST("/leads/:id/activity", h.AddActivity)
	rg.GET("/pipeline", h.Pipeline)
}

func (h *Handler) GetDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	detail, err := h.svc.GetDetail(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, detail)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.svc.Update(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, lead)
}

func (h *Handler) AddActivity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.AddActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if err := h.svc.AddActivity(c.Request.Context(), id, req); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"ok": true})
}

func (h *Handler) Pipeline(c *gin.Context) {
	page := 1
	if raw := c.Query("page"); raw != "" {
		if v, err := parsePositiveInt(raw); err == nil {
			page = v
		}
	}

	resp, err := h.svc.Pipeline(c.Request.Context(), c.Query("status"), page)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resp)
}
