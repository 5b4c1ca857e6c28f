package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ikkim/dongnegage-backend/config"
	"github.com/ikkim/dongnegage-backend/internal/app/controller"
	"github.com/ikkim/dongnegage-backend/internal/app/repository"
	"github.com/ikkim/dongnegage-backend/internal/app/service"
	"github.com/ikkim/dongnegage-backend/internal/db"
	"github.com/ikkim/dongnegage-backend/internal/middleware"
	"github.com/ikkim/dongnegage-backend/internal/router"
	"github.com/ikkim/dongnegage-backend/internal/scheduler"
	"github.com/ikkim/dongnegage-backend/internal/storage"
	"github.com/ikkim/dongnegage-backend/pkg/logger"
	"github.com/ikkim/dongnegage-backend/pkg/redis"
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

	logger.Info("Starting DONGNEGAGE Backend Server", map[string]interface{}{
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

	// Initialize Redis (token blacklist)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, token blacklist disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer redis.Close()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	storeRepo := repository.NewStoreRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())
	heartRepo := repository.NewHeartRepository(db.GetDB())
	resetRepo := repository.NewPasswordResetRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	passwordResetService := service.NewPasswordResetService(userRepo, resetRepo)
	storeService := service.NewStoreService(storeRepo)
	rankingService := service.NewRankingService(storeRepo, reviewRepo)
	tagService := service.NewTagService(storeRepo, storeService)
	heartService := service.NewHeartService(heartRepo, storeRepo)
	reviewService := service.NewReviewService(reviewRepo, storeRepo)

	// Initialize storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService, passwordResetService)
	storeController := controller.NewStoreController(storeService, rankingService, heartService)
	reviewController := controller.NewReviewController(reviewService)
	heartController := controller.NewHeartController(heartService)
	tagController := controller.NewTagController(tagService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Start scheduler (expired reset token cleanup)
	resetCleanup := scheduler.NewResetCleanupScheduler(passwordResetService)
	if err := resetCleanup.Start(); err != nil {
		logger.Error("Failed to start reset token cleanup scheduler", err)
	}
	defer resetCleanup.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		storeController,
		reviewController,
		heartController,
		tagController,
		uploadController,
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
