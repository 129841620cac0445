package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup/internal/config"
	"github.com/namefreezers/weather-lookup/internal/repository"
	"github.com/namefreezers/weather-lookup/internal/services"
	"github.com/namefreezers/weather-lookup/internal/weather"
)

func main() {
	// 1) Load config
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	// 2) Init logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize logger: %v", err)
	}
	defer logger.Sync()

	if len(cfg.SampleCities) == 0 {
		logger.Warn("SAMPLE_CITIES is empty, nothing to sample")
	}

	// 3) Open DB
	db, err := repository.OpenDB(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// 4) Wire up repository, weather client, service
	client, err := weather.NewClient(cfg)
	if err != nil {
		logger.Fatal("failed to initialize weather client", zap.Error(err))
	}
	readingSvc := services.NewReadingService(repository.NewReadingRepository(db, logger), client, logger)

	// 5) Build cron (standard 5-field, minute resolution)
	c := cron.New(cron.WithLogger(cronLogger(logger)))
	_, err = c.AddJob(cfg.SampleSchedule, newSampleJob(readingSvc, cfg.SampleCities, logger))
	if err != nil {
		logger.Fatal("unable to schedule cron job", zap.String("cronSpec", cfg.SampleSchedule), zap.Error(err))
	}

	logger.Info("starting scheduler",
		zap.String("cronSpec", cfg.SampleSchedule),
		zap.Strings("cities", cfg.SampleCities))
	c.Start()

	// block forever
	select {}
}

// cronLogger routes cron's own messages through zap.
func cronLogger(logger *zap.Logger) cron.Logger {
	return cron.PrintfLogger(zap.NewStdLog(logger))
}

// newSampleJob wraps one sampling round so that a tick arriving while the
// previous round is still running is skipped.
func newSampleJob(svc services.ReadingService, cities []string, logger *zap.Logger) cron.Job {
	chain := cron.NewChain(cron.SkipIfStillRunning(cronLogger(logger)))
	return chain.Then(cron.FuncJob(func() {
		sampleCities(context.Background(), svc, cities, logger)
	}))
}

// sampleCities looks up each city in turn. A failed city is logged and
// skipped until the next tick.
func sampleCities(ctx context.Context, svc services.ReadingService, cities []string, logger *zap.Logger) int {
	recorded := 0
	for _, city := range cities {
		if _, err := svc.Lookup(ctx, city, ""); err != nil {
			logger.Error("sample failed", zap.String("city", city), zap.Error(err))
			continue
		}
		recorded++
	}
	logger.Info("sampling round finished",
		zap.Int("cities", len(cities)),
		zap.Int("recorded", recorded))
	return recorded
}
