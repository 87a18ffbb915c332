package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	"github.com/eventra-live/eventra-admin-api/internal/service"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
	"github.com/eventra-live/eventra-admin-api/pkg/response"
)

// FeedbackHandler wires HTTP endpoints to the feedback service.
type FeedbackHandler struct {
	service *service.FeedbackService
}

// NewFeedbackHandler creates a new handler.
func NewFeedbackHandler(svc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: svc}
}

type feedbackListRequest struct {
	listRequest
	Rating *int `json:"rating"`
}

// List godoc
// @Summary List feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param payload body feedbackListRequest true "List options"
// @Success 200 {object} response.Envelope
// @Router /feedback/list [post]
func (h *FeedbackHandler) List(c *gin.Context) {
	var req feedbackListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid list payload"))
		return
	}

	page, err := h.service.List(c.Request.Context(), models.FeedbackFilter{
		Rating:    req.Rating,
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
// @Summary Get feedback entry
// @Tags Feedback
// @Produce json
// @Param id path string true "Feedback ID"
// @Success 200 {object} response.Envelope
// @Router /feedback/{id} [get]
func (h *FeedbackHandler) Get(c *gin.Context) {
	entry, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry)
}

// Delete godoc
// @Summary Delete feedback entry
// @Tags Feedback
// @Param id path string true "Feedback ID"
// @Success 204 {object} response.Envelope
// @Router /feedback/{id} [delete]
func (h *FeedbackHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
