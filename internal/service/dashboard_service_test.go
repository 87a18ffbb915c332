package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
)

type stubCacheRepo struct {
	store map[string][]byte
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	delete(s.store, pattern)
	return nil
}

type mockStatsRepo struct {
	stats *models.DashboardStats
	calls int
	err   error
}

func (m *mockStatsRepo) Collect(_ context.Context) (*models.DashboardStats, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	copied := *m.stats
	return &copied, nil
}

func TestDashboardServiceStatsServedFromCache(t *testing.T) {
	repo := &mockStatsRepo{stats: &models.DashboardStats{TotalEvents: 5, OpenComplaints: 2}}
	cacheSvc := NewCacheService(&stubCacheRepo{}, nil, time.Minute, zap.NewNop(), true)
	svc := NewDashboardService(repo, cacheSvc, DashboardConfig{CacheTTL: time.Minute}, zap.NewNop())

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, first.TotalEvents)
	assert.Equal(t, 1, repo.calls)

	second, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.TotalEvents, second.TotalEvents)
	assert.Equal(t, 1, repo.calls)
}

func TestDashboardServiceStatsBypassesDisabledCache(t *testing.T) {
	repo := &mockStatsRepo{stats: &models.DashboardStats{TotalUsers: 10}}
	cacheSvc := NewCacheService(nil, nil, time.Minute, zap.NewNop(), false)
	svc := NewDashboardService(repo, cacheSvc, DashboardConfig{}, zap.NewNop())

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)
	_, err = svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestDashboardServiceInvalidateForcesRefresh(t *testing.T) {
	repo := &mockStatsRepo{stats: &models.DashboardStats{TotalEvents: 1}}
	cacheSvc := NewCacheService(&stubCacheRepo{}, nil, time.Minute, zap.NewNop(), true)
	svc := NewDashboardService(repo, cacheSvc, DashboardConfig{CacheTTL: time.Minute}, zap.NewNop())

	_, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(context.Background()))

	_, err = svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestDashboardServiceStatsErrorPassthrough(t *testing.T) {
	repo := &mockStatsRepo{err: assert.AnError}
	cacheSvc := NewCacheService(nil, nil, time.Minute, zap.NewNop(), false)
	svc := NewDashboardService(repo, cacheSvc, DashboardConfig{}, zap.NewNop())

	_, err := svc.Stats(context.Background())
	require.Error(t, err)
}
