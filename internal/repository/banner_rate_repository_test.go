package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventra-live/eventra-admin-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestBannerRateRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBannerRateRepository(db)

	rows := sqlmock.NewRows([]string{"id", "days", "cost", "active", "created_at", "updated_at"}).
		AddRow("r1", 30, 500.0, true, time.Now(), time.Now()).
		AddRow("r2", 90, 1200.0, true, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, days, cost, active, created_at, updated_at FROM banner_rates WHERE 1=1 ORDER BY days ASC LIMIT 10 OFFSET 0")).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM banner_rates WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rates, total, err := repo.List(context.Background(), models.BannerRateFilter{})
	require.NoError(t, err)
	assert.Len(t, rates, 2)
	assert.Equal(t, 2, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBannerRateRepositoryListFiltersActive(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBannerRateRepository(db)

	active := true
	mock.ExpectQuery(regexp.QuoteMeta("FROM banner_rates WHERE 1=1 AND active = $1 ORDER BY days ASC LIMIT 10 OFFSET 0")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "days", "cost", "active", "created_at", "updated_at"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM banner_rates WHERE 1=1 AND active = $1")).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, total, err := repo.List(context.Background(), models.BannerRateFilter{Active: &active})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBannerRateRepositoryCreateAndToggle(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBannerRateRepository(db)

	mock.ExpectExec("INSERT INTO banner_rates").
		WithArgs(sqlmock.AnyArg(), 30, 500.0, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	rate := &models.BannerRate{Days: 30, Cost: 500, Active: true}
	require.NoError(t, repo.Create(context.Background(), rate))
	assert.NotEmpty(t, rate.ID)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE banner_rates SET active = $2, updated_at = $3 WHERE id = $1")).
		WithArgs(rate.ID, false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.SetActive(context.Background(), rate.ID, false))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBannerRateRepositoryCountActiveAds(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBannerRateRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM banner_ads WHERE rate_id = $1 AND ends_at > NOW()")).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountActiveAds(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
