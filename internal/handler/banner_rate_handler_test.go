package handler

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	"github.com/eventra-live/eventra-admin-api/internal/service"
)

type fakeBannerRateRepo struct {
	rate        *models.BannerRate
	activeAds   int
	deleteCalls int
}

func (f *fakeBannerRateRepo) List(context.Context, models.BannerRateFilter) ([]models.BannerRate, int, error) {
	return nil, 0, nil
}

func (f *fakeBannerRateRepo) FindByID(context.Context, string) (*models.BannerRate, error) {
	if f.rate == nil {
		return nil, sql.ErrNoRows
	}
	copied := *f.rate
	return &copied, nil
}

func (f *fakeBannerRateRepo) ExistsByDays(context.Context, int, string) (bool, error) {
	return false, nil
}

func (f *fakeBannerRateRepo) Create(_ context.Context, rate *models.BannerRate) error {
	rate.ID = "rate-1"
	return nil
}

func (f *fakeBannerRateRepo) Update(context.Context, *models.BannerRate) error { return nil }

func (f *fakeBannerRateRepo) SetActive(context.Context, string, bool) error { return nil }

func (f *fakeBannerRateRepo) Delete(context.Context, string) error {
	f.deleteCalls++
	return nil
}

func (f *fakeBannerRateRepo) CountActiveAds(context.Context, string) (int, error) {
	return f.activeAds, nil
}

func newBannerRateHandlerForTest(repo *fakeBannerRateRepo) *BannerRateHandler {
	return NewBannerRateHandler(service.NewBannerRateService(repo, nil, zap.NewNop()))
}

func TestBannerRateHandlerCreateRejectsBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newBannerRateHandlerForTest(&fakeBannerRateRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/banner-rates", strings.NewReader("not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBannerRateHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newBannerRateHandlerForTest(&fakeBannerRateRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/banner-rates", strings.NewReader(`{"days":30,"cost":499.0}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"rate-1"`)
}

func TestBannerRateHandlerDeleteBlockedWhileInUse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &fakeBannerRateRepo{
		rate:      &models.BannerRate{ID: "rate-1", Days: 30, Cost: 499},
		activeAds: 2,
	}
	handler := newBannerRateHandlerForTest(repo)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/banner-rates/rate-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "rate-1"}}

	handler.Delete(c)

	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)
	assert.Equal(t, 0, repo.deleteCalls)
}

func TestBannerRateHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newBannerRateHandlerForTest(&fakeBannerRateRepo{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/banner-rates/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
