package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	"github.com/eventra-live/eventra-admin-api/internal/service"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
	"github.com/eventra-live/eventra-admin-api/pkg/response"
	"github.com/eventra-live/eventra-admin-api/pkg/storage"
)

// UPISettingHandler wires HTTP endpoints to the UPI setting service.
type UPISettingHandler struct {
	service *service.UPISettingService
	storage *storage.LocalStorage
}

// NewUPISettingHandler creates a new handler.
func NewUPISettingHandler(svc *service.UPISettingService, store *storage.LocalStorage) *UPISettingHandler {
	return &UPISettingHandler{service: svc, storage: store}
}

type upiSettingListRequest struct {
	listRequest
	IsActive *bool `json:"isActive"`
}

// List godoc
// @Summary List UPI settings
// @Tags UPISettings
// @Accept json
// @Produce json
// @Param payload body upiSettingListRequest true "List options"
// @Success 200 {object} response.Envelope
// @Router /upi-settings/list [post]
func (h *UPISettingHandler) List(c *gin.Context) {
	var req upiSettingListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid list payload"))
		return
	}

	page, err := h.service.List(c.Request.Context(), models.UPISettingFilter{
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
// @Summary Get UPI setting
// @Tags UPISettings
// @Produce json
// @Param id path string true "Setting ID"
// @Success 200 {object} response.Envelope
// @Router /upi-settings/{id} [get]
func (h *UPISettingHandler) Get(c *gin.Context) {
	setting, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, setting)
}

// Create godoc
// @Summary Create UPI setting
// @Tags UPISettings
// @Accept json
// @Produce json
// @Param payload body service.UPISettingInput true "Setting payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /upi-settings [post]
func (h *UPISettingHandler) Create(c *gin.Context) {
	var input service.UPISettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid UPI setting payload"))
		return
	}

	setting, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, setting)
}

// Update godoc
// @Summary Update UPI setting
// @Tags UPISettings
// @Accept json
// @Produce json
// @Param id path string true "Setting ID"
// @Param payload body service.UPISettingInput true "Setting payload"
// @Success 200 {object} response.Envelope
// @Router /upi-settings/{id} [put]
func (h *UPISettingHandler) Update(c *gin.Context) {
	var input service.UPISettingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid UPI setting payload"))
		return
	}

	setting, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, setting)
}

// Activate godoc
// @Summary Activate UPI setting
// @Description Makes this the sole active payment identity
// @Tags UPISettings
// @Produce json
// @Param id path string true "Setting ID"
// @Success 200 {object} response.Envelope
// @Router /upi-settings/{id}/activate [patch]
func (h *UPISettingHandler) Activate(c *gin.Context) {
	setting, err := h.service.Activate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, setting)
}

// Deactivate godoc
// @Summary Deactivate UPI setting
// @Tags UPISettings
// @Produce json
// @Param id path string true "Setting ID"
// @Success 200 {object} response.Envelope
// @Router /upi-settings/{id}/deactivate [patch]
func (h *UPISettingHandler) Deactivate(c *gin.Context) {
	setting, err := h.service.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, setting)
}

// UploadQR godoc
// @Summary Upload QR code image
// @Tags UPISettings
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Setting ID"
// @Param file formData file true "QR image"
// @Success 200 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /upi-settings/{id}/qr [post]
func (h *UPISettingHandler) UploadQR(c *gin.Context) {
	setting, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	relPath, err := saveImageUpload(c, h.storage, "upi-qr")
	if err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), setting.ID, service.UPISettingInput{
		UPIID:       setting.UPIID,
		DisplayName: setting.DisplayName,
		QRImage:     relPath,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// Delete godoc
// @Summary Delete UPI setting
// @Description The active setting is blocked with 412
// @Tags UPISettings
// @Param id path string true "Setting ID"
// @Success 204 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /upi-settings/{id} [delete]
func (h *UPISettingHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
