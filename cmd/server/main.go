package main

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"homebase/server/config"
	"homebase/server/internal/api"
	"homebase/server/internal/auth"
	"homebase/server/internal/database"
	"homebase/server/internal/inquiry"
	"homebase/server/internal/listing"
	"homebase/server/internal/token"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if cfg.Database.Driver == "sqlite" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.DSN), 0o755); err != nil {
			logger.WithError(err).Fatal("Failed to create database directory")
		}
	}

	db, err := database.New(cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}

	logger.Info("Running database migrations...")
	if err := database.Migrate(db); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	tokens := token.NewService(cfg.JWTSecret)
	authService := auth.NewService(db, tokens, cfg.ProductKeySecret)
	listings := listing.NewService(db)
	inquiries := inquiry.NewService(db, listings)

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler := api.NewHandler(authService, tokens, listings, inquiries, logger)
	api.SetupRoutes(router, handler, logger)

	logger.Infof("Starting server on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
