package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/veryfy/veryfy-backend/config"
	"github.com/veryfy/veryfy-backend/internal/app/controller"
	"github.com/veryfy/veryfy-backend/internal/app/repository"
	"github.com/veryfy/veryfy-backend/internal/app/service"
	"github.com/veryfy/veryfy-backend/internal/db"
	"github.com/veryfy/veryfy-backend/internal/mailer"
	"github.com/veryfy/veryfy-backend/internal/middleware"
	"github.com/veryfy/veryfy-backend/internal/router"
	"github.com/veryfy/veryfy-backend/internal/scheduler"
	"github.com/veryfy/veryfy-backend/internal/storage"
	ws "github.com/veryfy/veryfy-backend/internal/websocket"
	"github.com/veryfy/veryfy-backend/pkg/logger"
	"github.com/veryfy/veryfy-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting VERYFY Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Redis backs token revocation and badge resolution caching. The server
	// still works without it, so a failure here only warns.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token revocation and badge caching disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// WebSocket hub for real-time alerts
	hub := ws.NewHub()
	go hub.Run()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	storeRepo := repository.NewStoreRepository(db.GetDB())
	documentRepo := repository.NewDocumentRepository(db.GetDB())
	badgeRepo := repository.NewBadgeRepository(db.GetDB())
	reportRepo := repository.NewReportRepository(db.GetDB())
	notificationRepo := repository.NewNotificationRepository(db.GetDB())

	// Initialize supporting infrastructure
	mail := mailer.NewSMTPMailer(&cfg.SMTP)
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	storeService := service.NewStoreService(storeRepo, documentRepo, userRepo)
	badgeService := service.NewBadgeService(badgeRepo, storeRepo, &cfg.Badge)
	notificationService := service.NewNotificationService(notificationRepo, hub)
	verificationService := service.NewVerificationService(
		storeRepo,
		documentRepo,
		userRepo,
		badgeService,
		notificationService,
		mail,
	)
	reportService := service.NewReportService(
		reportRepo,
		storeRepo,
		notificationRepo,
		notificationService,
		mail,
		&cfg.Report,
	)
	adminService := service.NewAdminService(storeRepo, reportRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	storeController := controller.NewStoreController(storeService, badgeService)
	badgeController := controller.NewBadgeController(badgeService)
	reportController := controller.NewReportController(reportService)
	adminController := controller.NewAdminController(
		adminService,
		storeService,
		verificationService,
		reportService,
		badgeService,
	)
	notificationController := controller.NewNotificationController(notificationService)
	uploadController := controller.NewUploadController(s3Storage)
	wsController := controller.NewWSController(hub, cfg.CORS.AllowedOrigins)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Daily review-queue digest for admins
	digestScheduler := scheduler.NewDigestScheduler(storeRepo, reportRepo, userRepo, mail)
	if err := digestScheduler.Start(); err != nil {
		logger.Warn("Review digest scheduler not running", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer digestScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		storeController,
		badgeController,
		reportController,
		adminController,
		notificationController,
		uploadController,
		wsController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
