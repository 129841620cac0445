package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup/internal/config"
	"github.com/namefreezers/weather-lookup/internal/handlers"
	"github.com/namefreezers/weather-lookup/internal/repository"
	"github.com/namefreezers/weather-lookup/internal/services"
	"github.com/namefreezers/weather-lookup/internal/weather"
)

func main() {
	// 1) Load configuration from .env (optional) and environment
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	// 2) Initialize structured logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer logger.Sync()

	// 3) Connect to Postgres
	db, err := repository.OpenDB(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// 4) Build the weather client
	client, err := weather.NewClient(cfg)
	if err != nil {
		logger.Fatal("failed to initialize weather client", zap.Error(err))
	}

	// 5) Wire up the reading service
	readingRepo := repository.NewReadingRepository(db, logger)
	readingSvc := services.NewReadingService(readingRepo, client, logger)

	// 6) Set up Gin router and handlers
	router := gin.Default()
	handlers.RegisterRoutes(router, readingSvc)

	// 7) Start HTTP server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port
	logger.Info("starting API server", zap.String("address", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
