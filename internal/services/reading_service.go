package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/namefreezers/weather-lookup/internal/repository"
	"github.com/namefreezers/weather-lookup/internal/weather"
)

// Sentinel errors for the HTTP handlers to inspect:
var (
	// returned when no reading has been recorded for the city yet
	ErrReadingNotFound = errors.New("no readings recorded for this city")

	// returned when a history limit is outside [1, MaxHistoryLimit]
	ErrInvalidLimit = errors.New("invalid history limit")
)

const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 100
)

// TemperatureFetcher is satisfied by *weather.Client.
type TemperatureFetcher interface {
	FetchTemperature(ctx context.Context, q weather.Query) (float64, error)
}

// ReadingService defines the business operations around lookups.
type ReadingService interface {
	Lookup(ctx context.Context, city, credential string) (repository.Reading, error)
	Latest(ctx context.Context, city string) (repository.Reading, error)
	History(ctx context.Context, city string, limit int) ([]repository.Reading, error)
}

type readingService struct {
	repo    repository.ReadingRepository
	fetcher TemperatureFetcher
	now     func() time.Time
	logger  *zap.Logger
}

// NewReadingService wires up service dependencies.
func NewReadingService(
	repo repository.ReadingRepository,
	fetcher TemperatureFetcher,
	logger *zap.Logger,
) ReadingService {
	return &readingService{repo: repo, fetcher: fetcher, now: time.Now, logger: logger}
}

// Lookup performs a single fetch and records the result. Fetch errors are
// returned untouched so callers can inspect the weather error variants.
// A failure to record is logged and does not fail the lookup.
func (s *readingService) Lookup(ctx context.Context, city, credential string) (repository.Reading, error) {
	temp, err := s.fetcher.FetchTemperature(ctx, weather.Query{City: city, Credential: credential})
	if err != nil {
		s.logger.Warn("weather lookup failed", zap.String("city", city), zap.Error(err))
		return repository.Reading{}, err
	}

	rd := repository.Reading{
		ID:          uuid.New(),
		City:        city,
		Temperature: temp,
		FetchedAt:   s.now().UTC(),
	}
	if err := s.repo.Record(ctx, rd); err != nil {
		s.logger.Error("failed to persist reading",
			zap.String("city", city),
			zap.Float64("temperature", temp),
			zap.Error(err),
		)
	}

	s.logger.Info("weather lookup succeeded",
		zap.String("city", city),
		zap.Float64("temperature", temp),
	)
	return rd, nil
}

// Latest returns the most recent recorded reading for city.
func (s *readingService) Latest(ctx context.Context, city string) (repository.Reading, error) {
	rd, err := s.repo.Latest(ctx, city)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return repository.Reading{}, ErrReadingNotFound
		}
		return repository.Reading{}, fmt.Errorf("repo.Latest: %w", err)
	}
	return rd, nil
}

// History returns up to limit readings for city, newest first.
// A zero limit means DefaultHistoryLimit.
func (s *readingService) History(ctx context.Context, city string, limit int) ([]repository.Reading, error) {
	if limit == 0 {
		limit = DefaultHistoryLimit
	}
	if limit < 1 || limit > MaxHistoryLimit {
		return nil, ErrInvalidLimit
	}

	rds, err := s.repo.History(ctx, city, limit)
	if err != nil {
		return nil, fmt.Errorf("repo.History: %w", err)
	}
	if rds == nil {
		rds = []repository.Reading{}
	}
	return rds, nil
}
