package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(db, "pgx")
	cleanup := func() {
		sqlxDB.Close()
	}
	return sqlxDB, mock, cleanup
}

var readingColumns = []string{"id", "city", "temperature", "fetched_at"}

func TestReadingRepository_Record_Success(t *testing.T) {
	sqlxDB, mock, cleanup := setupMockDB(t)
	defer cleanup()
	repo := NewReadingRepository(sqlxDB, zap.NewNop())

	rd := Reading{ID: uuid.New(), City: "Kyiv", Temperature: 22, FetchedAt: time.Now().UTC()}

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO readings (id, city, temperature, fetched_at) VALUES ($1, $2, $3, $4)",
	)).
		WithArgs(sqlmock.AnyArg(), "Kyiv", 22.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Record(context.Background(), rd); err != nil {
		t.Fatalf("Record() unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestReadingRepository_Record_DBError(t *testing.T) {
	sqlxDB, mock, cleanup := setupMockDB(t)
	defer cleanup()
	repo := NewReadingRepository(sqlxDB, zap.NewNop())

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO readings")).
		WillReturnError(sql.ErrConnDone)

	err := repo.Record(context.Background(), Reading{ID: uuid.New(), City: "Kyiv"})
	if !errors.Is(err, sql.ErrConnDone) {
		t.Errorf("Record() error = %v, want %v", err, sql.ErrConnDone)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestReadingRepository_Latest_ReturnsRow(t *testing.T) {
	sqlxDB, mock, cleanup := setupMockDB(t)
	defer cleanup()
	repo := NewReadingRepository(sqlxDB, zap.NewNop())

	id := uuid.New()
	at := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(readingColumns).AddRow(id.String(), "Kyiv", 18.5, at)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, city, temperature, fetched_at FROM readings WHERE city = $1 ORDER BY fetched_at DESC LIMIT 1",
	)).
		WithArgs("Kyiv").
		WillReturnRows(rows)

	got, err := repo.Latest(context.Background(), "Kyiv")
	if err != nil {
		t.Fatalf("Latest() unexpected error: %v", err)
	}
	want := Reading{ID: id, City: "Kyiv", Temperature: 18.5, FetchedAt: at}
	if got != want {
		t.Errorf("Latest() = %+v, want %+v", got, want)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestReadingRepository_Latest_NotFound(t *testing.T) {
	sqlxDB, mock, cleanup := setupMockDB(t)
	defer cleanup()
	repo := NewReadingRepository(sqlxDB, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, city, temperature, fetched_at FROM readings")).
		WithArgs("Atlantis").
		WillReturnRows(sqlmock.NewRows(readingColumns))

	_, err := repo.Latest(context.Background(), "Atlantis")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Latest() error = %v, want %v", err, sql.ErrNoRows)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestReadingRepository_History_ReturnsRows(t *testing.T) {
	sqlxDB, mock, cleanup := setupMockDB(t)
	defer cleanup()
	repo := NewReadingRepository(sqlxDB, zap.NewNop())

	newer := time.Date(2026, 10, 15, 12, 15, 0, 0, time.UTC)
	older := newer.Add(-15 * time.Minute)
	rows := sqlmock.NewRows(readingColumns).
		AddRow(uuid.NewString(), "Kyiv", 19.0, newer).
		AddRow(uuid.NewString(), "Kyiv", 18.0, older)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, city, temperature, fetched_at FROM readings WHERE city = $1 ORDER BY fetched_at DESC LIMIT $2",
	)).
		WithArgs("Kyiv", 2).
		WillReturnRows(rows)

	got, err := repo.History(context.Background(), "Kyiv", 2)
	if err != nil {
		t.Fatalf("History() unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("History() returned %d rows, want 2", len(got))
	}
	if got[0].Temperature != 19.0 || !got[0].FetchedAt.Equal(newer) {
		t.Errorf("History()[0] = %+v, want newest reading first", got[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestReadingRepository_History_Empty(t *testing.T) {
	sqlxDB, mock, cleanup := setupMockDB(t)
	defer cleanup()
	repo := NewReadingRepository(sqlxDB, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, city, temperature, fetched_at FROM readings")).
		WithArgs("Kyiv", 10).
		WillReturnRows(sqlmock.NewRows(nil))

	got, err := repo.History(context.Background(), "Kyiv", 10)
	if err != nil {
		t.Fatalf("History() unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("History() = %v, want empty", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}

func TestReadingRepository_History_DBError(t *testing.T) {
	sqlxDB, mock, cleanup := setupMockDB(t)
	defer cleanup()
	repo := NewReadingRepository(sqlxDB, zap.NewNop())

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, city, temperature, fetched_at FROM readings")).
		WithArgs("Kyiv", 10).
		WillReturnError(sql.ErrConnDone)

	got, err := repo.History(context.Background(), "Kyiv", 10)
	if !errors.Is(err, sql.ErrConnDone) {
		t.Errorf("History() error = %v, want %v", err, sql.ErrConnDone)
	}
	if got != nil {
		t.Errorf("History() = %v, want nil", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}
