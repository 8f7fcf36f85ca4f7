package main

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medcore/medstock-api/internal/application/service"
	"github.com/medcore/medstock-api/internal/config"
	"github.com/medcore/medstock-api/internal/infrastructure/database"
	"github.com/medcore/medstock-api/internal/infrastructure/repository"
	"github.com/medcore/medstock-api/internal/presentation/http/handler"
	"github.com/medcore/medstock-api/internal/presentation/http/middleware"
	"github.com/medcore/medstock-api/internal/presentation/http/routes"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if cfg.App.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Initialize repositories
	medicineRepo := repository.NewMedicineRepository(db)
	billRepo := repository.NewBillRepository(db)
	sequenceRepo := repository.NewBillSequenceRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	stockService := service.NewStockService(medicineRepo)
	billingService := service.NewBillingService(medicineRepo, billRepo, sequenceRepo)
	salesService := service.NewSalesService(billRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Stock:   handler.NewStockHandler(stockService),
		Billing: handler.NewBillingHandler(billingService),
		Sales:   handler.NewSalesHandler(salesService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Sweep expired idempotency keys in the background
	middleware.StartIdempotencyCleanup(context.Background(), idempotencyRepo, time.Hour)

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logrus.WithFields(logrus.Fields{
		"service": cfg.App.Name,
		"port":    port,
		"env":     cfg.App.Env,
	}).Info("Starting server")

	if err := router.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
