// Package router mounts every handler onto the Gin engine.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/bkpsdm/asn-monitor-api/internal/handler"
	"github.com/bkpsdm/asn-monitor-api/internal/middleware"
	"github.com/bkpsdm/asn-monitor-api/internal/service"
	"github.com/bkpsdm/asn-monitor-api/pkg/config"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	ASN           *handler.ASNHandler
	Notifications *handler.NotificationHandler
	Dashboard     *handler.DashboardHandler
	Auth          *handler.AuthHandler
	Health        *handler.HealthHandler
	Metrics       *handler.MetricsHandler
}

// Register mounts all routes. When auth is enabled the API group sits behind
// the JWT middleware; login, health and metrics stay public.
func Register(r *gin.Engine, cfg *config.Config, h Handlers, auth *service.AuthService) {
	r.GET("/health", h.Health.Health)
	r.GET("/metrics", h.Metrics.Prometheus)

	api := r.Group(cfg.APIPrefix)

	api.POST("/auth/login", h.Auth.Login)

	protected := api.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.JWT(auth))
	}

	asns := protected.Group("/asns")
	{
		asns.GET("", h.ASN.List)
		asns.POST("", h.ASN.Create)
		asns.GET("/export", h.ASN.Export)
		asns.GET("/:id", h.ASN.Get)
		asns.PUT("/:id", h.ASN.Update)
		asns.PATCH("/:id", h.ASN.Update)
		asns.DELETE("/:id", h.ASN.Delete)
	}

	protected.GET("/notifications", h.Notifications.List)
	protected.GET("/notifications/export", h.Notifications.Export)
	protected.GET("/dashboard/summary", h.Dashboard.Summary)
}
