package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
)

type mockBannerRateRepo struct {
	rates       []models.BannerRate
	rate        *models.BannerRate
	exists      bool
	activeAds   int
	listErr     error
	findErr     error
	deleteCalls int
	created     *models.BannerRate
	toggled     *bool
}

func (m *mockBannerRateRepo) List(_ context.Context, _ models.BannerRateFilter) ([]models.BannerRate, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	return m.rates, len(m.rates), nil
}

func (m *mockBannerRateRepo) FindByID(_ context.Context, _ string) (*models.BannerRate, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if m.rate == nil {
		return nil, sql.ErrNoRows
	}
	copied := *m.rate
	return &copied, nil
}

func (m *mockBannerRateRepo) ExistsByDays(_ context.Context, _ int, _ string) (bool, error) {
	return m.exists, nil
}

func (m *mockBannerRateRepo) Create(_ context.Context, rate *models.BannerRate) error {
	rate.ID = "rate-new"
	m.created = rate
	return nil
}

func (m *mockBannerRateRepo) Update(_ context.Context, _ *models.BannerRate) error { return nil }

func (m *mockBannerRateRepo) SetActive(_ context.Context, _ string, active bool) error {
	m.toggled = &active
	return nil
}

func (m *mockBannerRateRepo) Delete(_ context.Context, _ string) error {
	m.deleteCalls++
	return nil
}

func (m *mockBannerRateRepo) CountActiveAds(_ context.Context, _ string) (int, error) {
	return m.activeAds, nil
}

func TestBannerRateServiceCreateRejectsDuplicateDays(t *testing.T) {
	repo := &mockBannerRateRepo{exists: true}
	svc := NewBannerRateService(repo, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), BannerRateInput{Days: 30, Cost: 500})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Nil(t, repo.created)
}

func TestBannerRateServiceCreateDefaultsActive(t *testing.T) {
	repo := &mockBannerRateRepo{}
	svc := NewBannerRateService(repo, nil, zap.NewNop())

	rate, err := svc.Create(context.Background(), BannerRateInput{Days: 30, Cost: 500})
	require.NoError(t, err)
	assert.True(t, rate.Active)
	assert.Equal(t, "rate-new", rate.ID)
}

func TestBannerRateServiceDeleteBlockedWhileInUse(t *testing.T) {
	repo := &mockBannerRateRepo{
		rate:      &models.BannerRate{ID: "rate-1", Days: 30, Cost: 500, Active: true},
		activeAds: 2,
	}
	svc := NewBannerRateService(repo, nil, zap.NewNop())

	err := svc.Delete(context.Background(), "rate-1")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrInUse.Code, appErr.Code)
	assert.Equal(t, appErrors.ErrInUse.Status, appErr.Status)
	assert.Zero(t, repo.deleteCalls)
}

func TestBannerRateServiceDeleteSucceedsWhenUnused(t *testing.T) {
	repo := &mockBannerRateRepo{rate: &models.BannerRate{ID: "rate-1", Days: 30}}
	svc := NewBannerRateService(repo, nil, zap.NewNop())

	require.NoError(t, svc.Delete(context.Background(), "rate-1"))
	assert.Equal(t, 1, repo.deleteCalls)
}

func TestBannerRateServiceToggleFlipsState(t *testing.T) {
	repo := &mockBannerRateRepo{rate: &models.BannerRate{ID: "rate-1", Active: true}}
	svc := NewBannerRateService(repo, nil, zap.NewNop())

	rate, err := svc.ToggleActive(context.Background(), "rate-1")
	require.NoError(t, err)
	assert.False(t, rate.Active)
	require.NotNil(t, repo.toggled)
	assert.False(t, *repo.toggled)
}

func TestBannerRateServiceGetNotFound(t *testing.T) {
	svc := NewBannerRateService(&mockBannerRateRepo{}, nil, zap.NewNop())

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
