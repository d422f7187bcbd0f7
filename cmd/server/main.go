package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/bkpsdm/asn-monitor-api/api/swagger"
	"github.com/bkpsdm/asn-monitor-api/internal/handler"
	"github.com/bkpsdm/asn-monitor-api/internal/middleware"
	"github.com/bkpsdm/asn-monitor-api/internal/repository"
	"github.com/bkpsdm/asn-monitor-api/internal/router"
	"github.com/bkpsdm/asn-monitor-api/internal/service"
	"github.com/bkpsdm/asn-monitor-api/pkg/cache"
	"github.com/bkpsdm/asn-monitor-api/pkg/config"
	"github.com/bkpsdm/asn-monitor-api/pkg/database"
	"github.com/bkpsdm/asn-monitor-api/pkg/logger"
	corsmiddleware "github.com/bkpsdm/asn-monitor-api/pkg/middleware/cors"
	reqidmiddleware "github.com/bkpsdm/asn-monitor-api/pkg/middleware/requestid"
)

// @title ASN Monitor API
// @version 1.0.0
// @description Civil servant milestone monitoring (KGB & Kenaikan Pangkat)
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		logr.Sugar().Fatalw("failed to ensure schema", "error", err)
	}

	var cacheRepo *repository.CacheRepository
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, summary cache disabled", "error", err)
		} else {
			cacheRepo = repository.NewCacheRepository(redisClient)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	asnRepo := repository.NewASNRepository(db)
	asnSvc := service.NewASNService(asnRepo, cacheRepo, validate, logr)
	notifSvc := service.NewNotificationService(asnRepo, cfg.Notifications.WindowDays, cfg.Notifications.MaxItems, logr)
	dashSvc := service.NewDashboardService(notifSvc, cacheRepo, cfg.Dashboard.CacheTTL, metricsSvc, logr, cfg.Dashboard.CacheEnabled)
	authSvc := service.NewAuthService(cfg.Auth, validate, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	router.Register(r, cfg, router.Handlers{
		ASN:           handler.NewASNHandler(asnSvc),
		Notifications: handler.NewNotificationHandler(notifSvc),
		Dashboard:     handler.NewDashboardHandler(dashSvc),
		Auth:          handler.NewAuthHandler(authSvc),
		Health:        handler.NewHealthHandler(asnRepo, logr),
		Metrics:       handler.NewMetricsHandler(metricsSvc),
	}, authSvc)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
