package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type storePinger interface {
	Ping(ctx context.Context) (string, error)
}

// HealthHandler reports whether the backing store is reachable.
type HealthHandler struct {
	store  storePinger
	logger *zap.Logger
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(store storePinger, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{store: store, logger: logger}
}

// Health godoc
// @Summary Health check
// @Produce json
// @Success 200
// @Failure 500
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	now, err := h.store.Ping(c.Request.Context())
	if err != nil {
		h.logger.Error("health check failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "now": now})
}
