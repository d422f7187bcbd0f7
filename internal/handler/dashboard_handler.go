package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bkpsdm/asn-monitor-api/internal/service"
	"github.com/bkpsdm/asn-monitor-api/pkg/response"
)

// DashboardHandler serves the overview counters.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary godoc
// @Summary Dashboard summary counters
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.DashboardSummary
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, cached, err := h.dashboard.Summary(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	if cached {
		c.Header("X-Cache", "HIT")
	}
	response.OK(c, summary)
}
