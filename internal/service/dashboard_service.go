package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
)

const dashboardStatsKey = "dashboard:stats"

type statsRepository interface {
	Collect(ctx context.Context) (*models.DashboardStats, error)
}

// DashboardConfig tunes dashboard caching.
type DashboardConfig struct {
	CacheTTL time.Duration
}

// DashboardService serves the console landing page counters, backed by a
// short-lived cache.
type DashboardService struct {
	repo   statsRepository
	cache  *CacheService
	config DashboardConfig
	logger *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(repo statsRepository, cache *CacheService, config DashboardConfig, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = time.Minute
	}
	return &DashboardService{repo: repo, cache: cache, config: config, logger: logger}
}

// Stats returns the aggregate counters, from cache when fresh.
func (s *DashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var cached models.DashboardStats
	if hit, err := s.cache.Get(ctx, dashboardStatsKey, &cached); err == nil && hit {
		return &cached, nil
	}

	stats, err := s.repo.Collect(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to collect dashboard stats")
	}
	stats.GeneratedAt = time.Now().UTC()

	if err := s.cache.Set(ctx, dashboardStatsKey, stats, s.config.CacheTTL); err != nil {
		s.logger.Warn("failed to cache dashboard stats", zap.Error(err))
	}
	return stats, nil
}

// Invalidate drops the cached counters, forcing the next read to hit the
// database.
func (s *DashboardService) Invalidate(ctx context.Context) error {
	return s.cache.Invalidate(ctx, dashboardStatsKey)
}
