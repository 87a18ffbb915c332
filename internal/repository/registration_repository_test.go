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

func registrationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "event_id", "user_id", "name", "email", "phone", "tickets", "amount", "payment_status", "payment_ref", "created_at", "updated_at"}).
		AddRow("reg1", "ev1", nil, "Asha", "asha@example.com", "9999", 2, 400.0, "pending", "", time.Now(), time.Now())
}

func TestRegistrationRepositoryListByEventAndStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	pending := models.PaymentPending
	mock.ExpectQuery(regexp.QuoteMeta("FROM registrations WHERE 1=1 AND event_id = $1 AND payment_status = $2 ORDER BY created_at DESC LIMIT 10 OFFSET 0")).
		WithArgs("ev1", pending).
		WillReturnRows(registrationRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM registrations WHERE 1=1 AND event_id = $1 AND payment_status = $2")).
		WithArgs("ev1", pending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	regs, total, err := repo.List(context.Background(), models.RegistrationFilter{EventID: "ev1", PaymentStatus: &pending})
	require.NoError(t, err)
	assert.Len(t, regs, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryUpdatePaymentStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE registrations SET payment_status = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("reg1", models.PaymentCompleted, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.UpdatePaymentStatus(context.Background(), "reg1", models.PaymentCompleted))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryListAllForEvent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM registrations WHERE event_id = $1 ORDER BY created_at ASC")).
		WithArgs("ev1").
		WillReturnRows(registrationRows())

	regs, err := repo.ListAllForEvent(context.Background(), "ev1", nil)
	require.NoError(t, err)
	assert.Len(t, regs, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
