package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	"github.com/eventra-live/eventra-admin-api/internal/service"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
	"github.com/eventra-live/eventra-admin-api/pkg/response"
)

// BannerRateHandler wires HTTP endpoints to the banner rate service.
type BannerRateHandler struct {
	service *service.BannerRateService
}

// NewBannerRateHandler creates a new handler.
func NewBannerRateHandler(svc *service.BannerRateService) *BannerRateHandler {
	return &BannerRateHandler{service: svc}
}

type bannerRateListRequest struct {
	listRequest
	IsActive *bool `json:"isActive"`
}

// List godoc
// @Summary List banner rates
// @Tags BannerRates
// @Accept json
// @Produce json
// @Param payload body bannerRateListRequest true "List options"
// @Success 200 {object} response.Envelope
// @Router /banner-rates/list [post]
func (h *BannerRateHandler) List(c *gin.Context) {
	var req bannerRateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid list payload"))
		return
	}

	page, err := h.service.List(c.Request.Context(), models.BannerRateFilter{
		Active:    req.IsActive,
		Search:    req.Search,
		Page:      req.Page,
		PageSize:  req.Limit,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, page)
}

// Get godoc
// @Summary Get banner rate
// @Tags BannerRates
// @Produce json
// @Param id path string true "Rate ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /banner-rates/{id} [get]
func (h *BannerRateHandler) Get(c *gin.Context) {
	rate, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rate)
}

// Create godoc
// @Summary Create banner rate
// @Tags BannerRates
// @Accept json
// @Produce json
// @Param payload body service.BannerRateInput true "Rate payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /banner-rates [post]
func (h *BannerRateHandler) Create(c *gin.Context) {
	var input service.BannerRateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid banner rate payload"))
		return
	}

	rate, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, rate)
}

// Update godoc
// @Summary Update banner rate
// @Tags BannerRates
// @Accept json
// @Produce json
// @Param id path string true "Rate ID"
// @Param payload body service.BannerRateInput true "Rate payload"
// @Success 200 {object} response.Envelope
// @Router /banner-rates/{id} [put]
func (h *BannerRateHandler) Update(c *gin.Context) {
	var input service.BannerRateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid banner rate payload"))
		return
	}

	rate, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rate)
}

// ToggleActive godoc
// @Summary Toggle banner rate
// @Tags BannerRates
// @Produce json
// @Param id path string true "Rate ID"
// @Success 200 {object} response.Envelope
// @Router /banner-rates/{id}/toggle [patch]
func (h *BannerRateHandler) ToggleActive(c *gin.Context) {
	rate, err := h.service.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rate)
}

// Delete godoc
// @Summary Delete banner rate
// @Description Rates referenced by running ads are blocked with 412
// @Tags BannerRates
// @Param id path string true "Rate ID"
// @Success 204 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /banner-rates/{id} [delete]
func (h *BannerRateHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
