package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	"github.com/eventra-live/eventra-admin-api/internal/service"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
	"github.com/eventra-live/eventra-admin-api/pkg/response"
)

// ComplaintHandler wires HTTP endpoints to the complaint service.
type ComplaintHandler struct {
	service *service.ComplaintService
}

// NewComplaintHandler creates a new handler.
func NewComplaintHandler(svc *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: svc}
}

type complaintListRequest struct {
	listRequest
	Status *models.ComplaintStatus `json:"status"`
}

// List godoc
// @Summary List complaints
// @Tags Complaints
// @Accept json
// @Produce json
// @Param payload body complaintListRequest true "List options"
// @Success 200 {object} response.Envelope
// @Router /complaints/list [post]
func (h *ComplaintHandler) List(c *gin.Context) {
	var req complaintListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid list payload"))
		return
	}

	page, err := h.service.List(c.Request.Context(), models.ComplaintFilter{
		Status:    req.Status,
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
// @Summary Get complaint
// @Tags Complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} response.Envelope
// @Router /complaints/{id} [get]
func (h *ComplaintHandler) Get(c *gin.Context) {
	complaint, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, complaint)
}

// UpdateStatus godoc
// @Summary Update complaint status
// @Tags Complaints
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param payload body object true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /complaints/{id}/status [patch]
func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	var payload struct {
		Status models.ComplaintStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "status is required"))
		return
	}

	complaint, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), payload.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, complaint)
}

// Delete godoc
// @Summary Delete complaint
// @Tags Complaints
// @Param id path string true "Complaint ID"
// @Success 204 {object} response.Envelope
// @Router /complaints/{id} [delete]
func (h *ComplaintHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
