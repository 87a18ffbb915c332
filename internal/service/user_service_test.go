package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
)

type mockUserRepo struct {
	user          *models.User
	registrations int
	deleteCalls   int
	revokeCalls   int
	setActive     *bool
	auditActions  []string
}

func (m *mockUserRepo) List(_ context.Context, _ models.UserFilter) ([]models.User, int, error) {
	if m.user == nil {
		return nil, 0, nil
	}
	return []models.User{*m.user}, 1, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	if m.user == nil || m.user.ID != id {
		return nil, sql.ErrNoRows
	}
	copied := *m.user
	return &copied, nil
}

func (m *mockUserRepo) SetActive(_ context.Context, _ string, active bool) error {
	m.setActive = &active
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, _ string) error {
	m.deleteCalls++
	return nil
}

func (m *mockUserRepo) CountRegistrations(_ context.Context, _ string) (int, error) {
	return m.registrations, nil
}

func (m *mockUserRepo) RevokeUserRefreshTokens(_ context.Context, _ string) error {
	m.revokeCalls++
	return nil
}

func (m *mockUserRepo) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	m.auditActions = append(m.auditActions, log.Action)
	return nil
}

func superadminActor() Actor {
	return Actor{ID: "actor-1", Role: models.RoleSuperAdmin, IP: "127.0.0.1"}
}

func TestUserServiceToggleDeactivationRevokesTokens(t *testing.T) {
	repo := &mockUserRepo{user: &models.User{ID: "user-1", Role: models.RoleMember, Active: true}}
	svc := NewUserService(repo, zap.NewNop())

	user, err := svc.ToggleActive(context.Background(), "user-1", superadminActor())
	require.NoError(t, err)
	assert.False(t, user.Active)
	assert.Equal(t, 1, repo.revokeCalls)
	assert.Contains(t, repo.auditActions, models.AuditActionUserToggle)
}

func TestUserServiceToggleActivationKeepsTokens(t *testing.T) {
	repo := &mockUserRepo{user: &models.User{ID: "user-1", Role: models.RoleMember, Active: false}}
	svc := NewUserService(repo, zap.NewNop())

	user, err := svc.ToggleActive(context.Background(), "user-1", superadminActor())
	require.NoError(t, err)
	assert.True(t, user.Active)
	assert.Zero(t, repo.revokeCalls)
}

func TestUserServiceAdminCannotActOnAdminAccounts(t *testing.T) {
	repo := &mockUserRepo{user: &models.User{ID: "user-1", Role: models.RoleAdmin, Active: true}}
	svc := NewUserService(repo, zap.NewNop())

	actor := Actor{ID: "actor-1", Role: models.RoleAdmin}
	_, err := svc.ToggleActive(context.Background(), "user-1", actor)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
	assert.Nil(t, repo.setActive)
}

func TestUserServiceDeleteBlockedByRegistrations(t *testing.T) {
	repo := &mockUserRepo{
		user:          &models.User{ID: "user-1", Role: models.RoleMember},
		registrations: 3,
	}
	svc := NewUserService(repo, zap.NewNop())

	err := svc.Delete(context.Background(), "user-1", superadminActor())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInUse.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.deleteCalls)
}

func TestUserServiceDeleteRejectsSelf(t *testing.T) {
	repo := &mockUserRepo{user: &models.User{ID: "actor-1", Role: models.RoleMember}}
	svc := NewUserService(repo, zap.NewNop())

	err := svc.Delete(context.Background(), "actor-1", superadminActor())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestUserServiceDeleteRevokesAndAudits(t *testing.T) {
	repo := &mockUserRepo{user: &models.User{ID: "user-1", Role: models.RoleMember, LastLogin: timePtr(time.Now())}}
	svc := NewUserService(repo, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), "user-1", superadminActor()))
	assert.Equal(t, 1, repo.deleteCalls)
	assert.Equal(t, 1, repo.revokeCalls)
	assert.Contains(t, repo.auditActions, models.AuditActionUserDelete)
}

func timePtr(t time.Time) *time.Time { return &t }
