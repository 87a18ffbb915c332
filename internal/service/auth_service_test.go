package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
)

type mockAuthRepo struct {
	user          *models.User
	refreshToken  *models.RefreshToken
	createdTokens []*models.RefreshToken
	revokedAll    int
	revokedOne    int
	auditActions  []string
}

func (m *mockAuthRepo) FindByEmail(_ context.Context, _ string) (*models.User, error) {
	if m.user == nil {
		return nil, sql.ErrNoRows
	}
	return m.user, nil
}

func (m *mockAuthRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	if m.user == nil || m.user.ID != id {
		return nil, sql.ErrNoRows
	}
	return m.user, nil
}

func (m *mockAuthRepo) UpdateLastLogin(_ context.Context, _ string, _ time.Time) error { return nil }

func (m *mockAuthRepo) RevokeUserRefreshTokens(_ context.Context, _ string) error {
	m.revokedAll++
	return nil
}

func (m *mockAuthRepo) CreateRefreshToken(_ context.Context, token *models.RefreshToken) error {
	m.createdTokens = append(m.createdTokens, token)
	return nil
}

func (m *mockAuthRepo) FindRefreshToken(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	if m.refreshToken == nil || m.refreshToken.TokenHash != tokenHash {
		return nil, sql.ErrNoRows
	}
	return m.refreshToken, nil
}

func (m *mockAuthRepo) RevokeRefreshToken(_ context.Context, _ string, _ time.Time) error {
	m.revokedOne++
	return nil
}

func (m *mockAuthRepo) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	m.auditActions = append(m.auditActions, log.Action)
	return nil
}

func testAuthConfig() AuthConfig {
	return AuthConfig{
		AccessTokenSecret:  "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "eventra-admin",
		SingleSession:      true,
	}
}

func adminUser(t *testing.T, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &models.User{
		ID:           "user-1",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		FullName:     "Admin",
		Role:         models.RoleAdmin,
		Active:       true,
	}
}

func TestAuthServiceLoginIssuesTokens(t *testing.T) {
	repo := &mockAuthRepo{user: adminUser(t, "secret123")}
	svc := NewAuthService(repo, nil, zap.NewNop(), testAuthConfig())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "user-1", resp.User.ID)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	// single-session revokes old tokens and stores only the hash
	assert.Equal(t, 1, repo.revokedAll)
	require.Len(t, repo.createdTokens, 1)
	assert.NotEqual(t, resp.RefreshToken, repo.createdTokens[0].TokenHash)
	assert.Equal(t, hashRefreshToken(resp.RefreshToken), repo.createdTokens[0].TokenHash)
	assert.Contains(t, repo.auditActions, models.AuditActionLogin)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	repo := &mockAuthRepo{user: adminUser(t, "secret123")}
	svc := NewAuthService(repo, nil, zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "wrong-pass"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginUnknownEmailSameError(t *testing.T) {
	svc := NewAuthService(&mockAuthRepo{}, nil, zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@example.com", Password: "whatever1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginInactiveAccount(t *testing.T) {
	user := adminUser(t, "secret123")
	user.Active = false
	svc := NewAuthService(&mockAuthRepo{user: user}, nil, zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInactiveAccount.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceLoginRejectsMemberRole(t *testing.T) {
	user := adminUser(t, "secret123")
	user.Role = models.RoleMember
	svc := NewAuthService(&mockAuthRepo{user: user}, nil, zap.NewNop(), testAuthConfig())

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: user.Email, Password: "secret123"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestAuthServiceRefreshRotatesToken(t *testing.T) {
	user := adminUser(t, "secret123")
	raw := "refresh-token-value"
	repo := &mockAuthRepo{
		user: user,
		refreshToken: &models.RefreshToken{
			ID:        "rt-1",
			UserID:    user.ID,
			TokenHash: hashRefreshToken(raw),
			IssuedAt:  time.Now().UTC().Add(-time.Hour),
			ExpiresAt: time.Now().UTC().Add(time.Hour),
		},
	}
	svc := NewAuthService(repo, nil, zap.NewNop(), testAuthConfig())

	resp, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: raw})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEqual(t, raw, resp.RefreshToken)
	assert.Equal(t, 1, repo.revokedOne)
	require.Len(t, repo.createdTokens, 1)
}

func TestAuthServiceRefreshRejectsExpiredToken(t *testing.T) {
	user := adminUser(t, "secret123")
	raw := "expired-token"
	repo := &mockAuthRepo{
		user: user,
		refreshToken: &models.RefreshToken{
			ID:        "rt-1",
			UserID:    user.ID,
			TokenHash: hashRefreshToken(raw),
			IssuedAt:  time.Now().UTC().Add(-48 * time.Hour),
			ExpiresAt: time.Now().UTC().Add(-time.Hour),
		},
	}
	svc := NewAuthService(repo, nil, zap.NewNop(), testAuthConfig())

	_, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: raw})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.revokedOne)
}

func TestAuthServiceValidateTokenRejectsTampered(t *testing.T) {
	svc := NewAuthService(&mockAuthRepo{}, nil, zap.NewNop(), testAuthConfig())

	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
