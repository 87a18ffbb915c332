package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUPISettingRepositoryActivateDeactivatesOthers(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUPISettingRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE upi_settings SET active = FALSE, updated_at = $1 WHERE active = TRUE AND id <> $2")).
		WithArgs(sqlmock.AnyArg(), "u1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE upi_settings SET active = TRUE, updated_at = $1 WHERE id = $2")).
		WithArgs(sqlmock.AnyArg(), "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Activate(context.Background(), "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUPISettingRepositoryActivateRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUPISettingRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE upi_settings SET active = FALSE")).
		WithArgs(sqlmock.AnyArg(), "u1").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	require.Error(t, repo.Activate(context.Background(), "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
