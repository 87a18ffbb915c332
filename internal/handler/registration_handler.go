package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	"github.com/eventra-live/eventra-admin-api/internal/service"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
	"github.com/eventra-live/eventra-admin-api/pkg/response"
)

// RegistrationHandler wires HTTP endpoints to the registration service.
type RegistrationHandler struct {
	service *service.RegistrationService
}

// NewRegistrationHandler creates a new handler.
func NewRegistrationHandler(svc *service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{service: svc}
}

type registrationListRequest struct {
	listRequest
	EventID       string                `json:"eventId"`
	PaymentStatus *models.PaymentStatus `json:"paymentStatus"`
}

// List godoc
// @Summary List registrations
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body registrationListRequest true "List options"
// @Success 200 {object} response.Envelope
// @Router /registrations/list [post]
func (h *RegistrationHandler) List(c *gin.Context) {
	var req registrationListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid list payload"))
		return
	}

	page, err := h.service.List(c.Request.Context(), models.RegistrationFilter{
		EventID:       req.EventID,
		PaymentStatus: req.PaymentStatus,
		Search:        req.Search,
		Page:          req.Page,
		PageSize:      req.Limit,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, page)
}

// Get godoc
// @Summary Get registration
// @Tags Registrations
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /registrations/{id} [get]
func (h *RegistrationHandler) Get(c *gin.Context) {
	reg, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reg)
}

// UpdatePaymentStatus godoc
// @Summary Update payment status
// @Tags Registrations
// @Accept json
// @Produce json
// @Param id path string true "Registration ID"
// @Param payload body object true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /registrations/{id}/payment-status [patch]
func (h *RegistrationHandler) UpdatePaymentStatus(c *gin.Context) {
	var payload struct {
		PaymentStatus models.PaymentStatus `json:"paymentStatus" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "paymentStatus is required"))
		return
	}

	reg, err := h.service.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), payload.PaymentStatus)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reg)
}

// Delete godoc
// @Summary Delete registration
// @Tags Registrations
// @Param id path string true "Registration ID"
// @Success 204 {object} response.Envelope
// @Router /registrations/{id} [delete]
func (h *RegistrationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
