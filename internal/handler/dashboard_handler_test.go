package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	"github.com/eventra-live/eventra-admin-api/internal/service"
)

type fakeStatsRepo struct {
	stats    *models.DashboardStats
	err      error
	collects int
}

func (f *fakeStatsRepo) Collect(context.Context) (*models.DashboardStats, error) {
	f.collects++
	if f.err != nil {
		return nil, f.err
	}
	copied := *f.stats
	return &copied, nil
}

func newDashboardHandlerForTest(repo *fakeStatsRepo) *DashboardHandler {
	cache := service.NewCacheService(nil, nil, 0, zap.NewNop(), false)
	svc := service.NewDashboardService(repo, cache, service.DashboardConfig{}, zap.NewNop())
	return NewDashboardHandler(svc)
}

func TestDashboardHandlerStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeStatsRepo{stats: &models.DashboardStats{TotalEvents: 7, TotalUsers: 42}}
	handler := newDashboardHandlerForTest(repo)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)

	handler.Stats(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, float64(7), envelope.Data["totalEvents"])
	assert.Equal(t, float64(42), envelope.Data["totalUsers"])
	assert.Equal(t, 1, repo.collects)
}

func TestDashboardHandlerStatsFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newDashboardHandlerForTest(&fakeStatsRepo{err: assert.AnError})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/dashboard/stats", nil)

	handler.Stats(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDashboardHandlerRefresh(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newDashboardHandlerForTest(&fakeStatsRepo{stats: &models.DashboardStats{}})

	// A bare test context never flushes a status-only response, so drive the
	// request through an engine the way production does.
	r := gin.New()
	r.POST("/dashboard/refresh", handler.Refresh)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/dashboard/refresh", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

type responseEnvelope struct {
	Data map[string]interface{} `json:"data"`
	Meta map[string]interface{} `json:"meta"`
}
