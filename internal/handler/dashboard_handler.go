package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventra-live/eventra-admin-api/internal/service"
	"github.com/eventra-live/eventra-admin-api/pkg/response"
)

// DashboardHandler serves the console landing page counters.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Stats godoc
// @Summary Dashboard statistics
// @Description Aggregate counters for the console landing page
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// Refresh godoc
// @Summary Invalidate dashboard cache
// @Tags Dashboard
// @Produce json
// @Success 204 {object} response.Envelope
// @Router /dashboard/refresh [post]
func (h *DashboardHandler) Refresh(c *gin.Context) {
	if err := h.service.Invalidate(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
