package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	"github.com/eventra-live/eventra-admin-api/internal/service"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
	"github.com/eventra-live/eventra-admin-api/pkg/response"
)

// RegionHandler wires HTTP endpoints to the region service.
type RegionHandler struct {
	service *service.RegionService
}

// NewRegionHandler creates a new handler.
func NewRegionHandler(svc *service.RegionService) *RegionHandler {
	return &RegionHandler{service: svc}
}

type regionListRequest struct {
	listRequest
	State string `json:"state"`
}

// List godoc
// @Summary List regions
// @Tags Regions
// @Accept json
// @Produce json
// @Param payload body regionListRequest true "List options"
// @Success 200 {object} response.Envelope
// @Router /regions/list [post]
func (h *RegionHandler) List(c *gin.Context) {
	var req regionListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid list payload"))
		return
	}

	page, err := h.service.List(c.Request.Context(), models.RegionFilter{
		State:     req.State,
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
// @Summary Get region
// @Tags Regions
// @Produce json
// @Param id path string true "Region ID"
// @Success 200 {object} response.Envelope
// @Router /regions/{id} [get]
func (h *RegionHandler) Get(c *gin.Context) {
	region, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, region)
}

// Create godoc
// @Summary Create region
// @Tags Regions
// @Accept json
// @Produce json
// @Param payload body service.RegionInput true "Region payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /regions [post]
func (h *RegionHandler) Create(c *gin.Context) {
	var input service.RegionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid region payload"))
		return
	}

	region, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, region)
}

// Update godoc
// @Summary Update region
// @Tags Regions
// @Accept json
// @Produce json
// @Param id path string true "Region ID"
// @Param payload body service.RegionInput true "Region payload"
// @Success 200 {object} response.Envelope
// @Router /regions/{id} [put]
func (h *RegionHandler) Update(c *gin.Context) {
	var input service.RegionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid region payload"))
		return
	}

	region, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, region)
}

// Delete godoc
// @Summary Delete region
// @Description Regions with assigned members are blocked with 412
// @Tags Regions
// @Param id path string true "Region ID"
// @Success 204 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /regions/{id} [delete]
func (h *RegionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
