package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	"github.com/eventra-live/eventra-admin-api/internal/service"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
	"github.com/eventra-live/eventra-admin-api/pkg/response"
)

// PhotoCategoryHandler wires HTTP endpoints to the photo category service.
type PhotoCategoryHandler struct {
	service *service.PhotoCategoryService
}

// NewPhotoCategoryHandler creates a new handler.
func NewPhotoCategoryHandler(svc *service.PhotoCategoryService) *PhotoCategoryHandler {
	return &PhotoCategoryHandler{service: svc}
}

type photoCategoryListRequest struct {
	listRequest
	IsActive *bool `json:"isActive"`
}

// List godoc
// @Summary List photo categories
// @Tags PhotoCategories
// @Accept json
// @Produce json
// @Param payload body photoCategoryListRequest true "List options"
// @Success 200 {object} response.Envelope
// @Router /photo-categories/list [post]
func (h *PhotoCategoryHandler) List(c *gin.Context) {
	var req photoCategoryListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid list payload"))
		return
	}

	page, err := h.service.List(c.Request.Context(), models.PhotoCategoryFilter{
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
// @Summary Get photo category
// @Tags PhotoCategories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.Envelope
// @Router /photo-categories/{id} [get]
func (h *PhotoCategoryHandler) Get(c *gin.Context) {
	category, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, category)
}

// Create godoc
// @Summary Create photo category
// @Tags PhotoCategories
// @Accept json
// @Produce json
// @Param payload body service.PhotoCategoryInput true "Category payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /photo-categories [post]
func (h *PhotoCategoryHandler) Create(c *gin.Context) {
	var input service.PhotoCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid category payload"))
		return
	}

	category, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category)
}

// Update godoc
// @Summary Update photo category
// @Tags PhotoCategories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param payload body service.PhotoCategoryInput true "Category payload"
// @Success 200 {object} response.Envelope
// @Router /photo-categories/{id} [put]
func (h *PhotoCategoryHandler) Update(c *gin.Context) {
	var input service.PhotoCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid category payload"))
		return
	}

	category, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, category)
}

// ToggleActive godoc
// @Summary Toggle photo category
// @Tags PhotoCategories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.Envelope
// @Router /photo-categories/{id}/toggle [patch]
func (h *PhotoCategoryHandler) ToggleActive(c *gin.Context) {
	category, err := h.service.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, category)
}

// Delete godoc
// @Summary Delete photo category
// @Description Categories still holding photos are blocked with 412
// @Tags PhotoCategories
// @Param id path string true "Category ID"
// @Success 204 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /photo-categories/{id} [delete]
func (h *PhotoCategoryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
