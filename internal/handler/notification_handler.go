package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bkpsdm/asn-monitor-api/internal/service"
	"github.com/bkpsdm/asn-monitor-api/pkg/response"
)

// NotificationHandler serves the milestone due-date feed.
type NotificationHandler struct {
	notifications *service.NotificationService
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List godoc
// @Summary List due and overdue milestones, nearest first
// @Tags Notifications
// @Produce json
// @Success 200 {array} models.NotificationItem
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.notifications.Flat(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// Export godoc
// @Summary Export the milestone feed
// @Tags Notifications
// @Param format query string false "csv (default) or pdf"
// @Success 200
// @Router /notifications/export [get]
func (h *NotificationHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	payload, err := h.notifications.Export(c.Request.Context(), time.Now(), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	if format == "pdf" {
		response.Attachment(c, "jadwal-asn.pdf", "application/pdf", payload)
		return
	}
	response.Attachment(c, "jadwal-asn.csv", "text/csv", payload)
}
