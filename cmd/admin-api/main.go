package main

import (
	"context"
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
	"go.uber.org/zap"

	_ "github.com/eventra-live/eventra-admin-api/api/swagger"
	"github.com/eventra-live/eventra-admin-api/internal/handler"
	"github.com/eventra-live/eventra-admin-api/internal/middleware"
	"github.com/eventra-live/eventra-admin-api/internal/repository"
	"github.com/eventra-live/eventra-admin-api/internal/router"
	"github.com/eventra-live/eventra-admin-api/internal/service"
	"github.com/eventra-live/eventra-admin-api/pkg/cache"
	"github.com/eventra-live/eventra-admin-api/pkg/config"
	"github.com/eventra-live/eventra-admin-api/pkg/database"
	"github.com/eventra-live/eventra-admin-api/pkg/jobs"
	"github.com/eventra-live/eventra-admin-api/pkg/logger"
	corsmiddleware "github.com/eventra-live/eventra-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/eventra-live/eventra-admin-api/pkg/middleware/requestid"
	"github.com/eventra-live/eventra-admin-api/pkg/storage"
)

// @title Eventra Admin API
// @version 1.0.0
// @description Administration backend for the Eventra event platform
// @BasePath /api/v1
// @schemes http https

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
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}

	uploadStore, err := storage.NewLocalStorage(cfg.Uploads.StorageDir)
	if err != nil {
		logr.Fatal("failed to init upload storage", zap.Error(err))
	}
	exportStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Fatal("failed to init export storage", zap.Error(err))
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)

	validate := validator.New()

	// repositories
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	bannerRateRepo := repository.NewBannerRateRepository(db)
	photoCategoryRepo := repository.NewPhotoCategoryRepository(db)
	regionRepo := repository.NewRegionRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	upiRepo := repository.NewUPISettingRepository(db)
	exportRepo := repository.NewExportRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	// services
	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, redisClient != nil)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "eventra-admin-api",
		SingleSession:      cfg.JWT.SingleSession,
	})
	userSvc := service.NewUserService(userRepo, logr)
	eventSvc := service.NewEventService(eventRepo, galleryRepo, validate, logr)
	registrationSvc := service.NewRegistrationService(registrationRepo, logr)
	bannerRateSvc := service.NewBannerRateService(bannerRateRepo, validate, logr)
	photoCategorySvc := service.NewPhotoCategoryService(photoCategoryRepo, galleryRepo, validate, logr)
	regionSvc := service.NewRegionService(regionRepo, validate, logr)
	complaintSvc := service.NewComplaintService(complaintRepo, logr)
	feedbackSvc := service.NewFeedbackService(feedbackRepo, logr)
	upiSvc := service.NewUPISettingService(upiRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(statsRepo, cacheSvc, service.DashboardConfig{CacheTTL: cfg.Dashboard.CacheTTL}, logr)
	exportSvc := service.NewExportService(exportRepo, registrationRepo, eventRepo, userRepo, exportStore, signer, metricsSvc, logr, jobs.QueueConfig{
		Workers:    cfg.Exports.WorkerConcurrency,
		MaxRetries: cfg.Exports.WorkerRetries,
		Logger:     logr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Exports.Enabled {
		exportSvc.Queue().Start(ctx)
		defer exportSvc.Queue().Stop()
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	router.Register(r, cfg.APIPrefix, authSvc, router.Handlers{
		Auth:          handler.NewAuthHandler(authSvc),
		User:          handler.NewUserHandler(userSvc),
		Event:         handler.NewEventHandler(eventSvc, uploadStore),
		Registration:  handler.NewRegistrationHandler(registrationSvc),
		BannerRate:    handler.NewBannerRateHandler(bannerRateSvc),
		PhotoCategory: handler.NewPhotoCategoryHandler(photoCategorySvc),
		Region:        handler.NewRegionHandler(regionSvc),
		Complaint:     handler.NewComplaintHandler(complaintSvc),
		Feedback:      handler.NewFeedbackHandler(feedbackSvc),
		UPISetting:    handler.NewUPISettingHandler(upiSvc, uploadStore),
		Dashboard:     handler.NewDashboardHandler(dashboardSvc),
		Export:        handler.NewExportHandler(exportSvc),
		Metrics:       handler.NewMetricsHandler(metricsSvc, db, redisClient),
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
