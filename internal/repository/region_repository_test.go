package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventra-live/eventra-admin-api/internal/models"
)

func TestRegionRepositoryListWithSearch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "code", "state", "created_at", "updated_at"}).
		AddRow("rg1", "North Zone", "NZ", "Karnataka", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM regions WHERE 1=1 AND (LOWER(name) LIKE $1 OR LOWER(code) LIKE $1) ORDER BY name ASC LIMIT 10 OFFSET 0")).
		WithArgs("%north%").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM regions WHERE 1=1 AND (LOWER(name) LIKE $1 OR LOWER(code) LIKE $1)")).
		WithArgs("%north%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	regions, total, err := repo.List(context.Background(), models.RegionFilter{Search: "North"})
	require.NoError(t, err)
	assert.Len(t, regions, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegionRepositoryExistsByCode(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM regions WHERE LOWER(code) = LOWER($1) LIMIT 1")).
		WithArgs("NZ").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	exists, err := repo.ExistsByCode(context.Background(), "NZ", "")
	require.NoError(t, err)
	assert.True(t, exists)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM regions WHERE LOWER(code) = LOWER($1) AND id <> $2 LIMIT 1")).
		WithArgs("NZ", "rg1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	exists, err = repo.ExistsByCode(context.Background(), "NZ", "rg1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegionRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegionRepository(db)

	mock.ExpectExec("INSERT INTO regions").
		WithArgs(sqlmock.AnyArg(), "North Zone", "NZ", "Karnataka", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	region := &models.Region{Name: "North Zone", Code: "NZ", State: "Karnataka"}
	require.NoError(t, repo.Create(context.Background(), region))
	assert.NotEmpty(t, region.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
