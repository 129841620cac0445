package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Reading struct {
	ID          uuid.UUID `db:"id"`
	City        string    `db:"city"`
	Temperature float64   `db:"temperature"`
	FetchedAt   time.Time `db:"fetched_at"`
}

// ReadingRepository stores successful lookups.
type ReadingRepository interface {
	Record(ctx context.Context, r Reading) error
	// Latest returns sql.ErrNoRows when the city has no readings.
	Latest(ctx context.Context, city string) (Reading, error)
	// History returns up to limit readings, newest first.
	History(ctx context.Context, city string, limit int) ([]Reading, error)
}

type pgRepo struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewReadingRepository(db *sqlx.DB, logger *zap.Logger) ReadingRepository {
	return &pgRepo{db: db, logger: logger}
}

func (r *pgRepo) Record(ctx context.Context, rd Reading) error {
	const q = `
        INSERT INTO readings (id, city, temperature, fetched_at)
        VALUES ($1, $2, $3, $4);
    `
	if _, err := r.db.ExecContext(ctx, q, rd.ID, rd.City, rd.Temperature, rd.FetchedAt); err != nil {
		r.logger.Error("failed to record reading",
			zap.String("city", rd.City),
			zap.Float64("temperature", rd.Temperature),
			zap.Error(err),
		)
		return err
	}

	r.logger.Debug("reading recorded",
		zap.String("id", rd.ID.String()),
		zap.String("city", rd.City),
		zap.Float64("temperature", rd.Temperature),
	)
	return nil
}

func (r *pgRepo) Latest(ctx context.Context, city string) (Reading, error) {
	const q = `
        SELECT id, city, temperature, fetched_at FROM readings
        WHERE city = $1
        ORDER BY fetched_at DESC
        LIMIT 1;
    `
	var rd Reading
	if err := r.db.GetContext(ctx, &rd, q, city); err != nil {
		r.logger.Debug("latest reading lookup failed", zap.String("city", city), zap.Error(err))
		return Reading{}, err
	}
	return rd, nil
}

func (r *pgRepo) History(ctx context.Context, city string, limit int) ([]Reading, error) {
	const q = `
        SELECT id, city, temperature, fetched_at FROM readings
        WHERE city = $1
        ORDER BY fetched_at DESC
        LIMIT $2;
    `
	var rds []Reading
	if err := r.db.SelectContext(ctx, &rds, q, city, limit); err != nil {
		r.logger.Error("failed to fetch reading history", zap.String("city", city), zap.Int("limit", limit), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("fetched reading history", zap.String("city", city), zap.Int("count", len(rds)))
	return rds, nil
}
