package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	"github.com/eventra-live/eventra-admin-api/internal/service"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
	"github.com/eventra-live/eventra-admin-api/pkg/response"
)

// UserHandler wires HTTP endpoints to the user service.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new handler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

type userListRequest struct {
	listRequest
	Role     *models.UserRole `json:"role"`
	IsActive *bool            `json:"isActive"`
	RegionID string           `json:"regionId"`
}

// List godoc
// @Summary List user accounts
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body userListRequest true "List options"
// @Success 200 {object} response.Envelope
// @Router /users/list [post]
func (h *UserHandler) List(c *gin.Context) {
	var req userListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid list payload"))
		return
	}

	page, err := h.service.List(c.Request.Context(), models.UserFilter{
		Role:      req.Role,
		Active:    req.IsActive,
		RegionID:  req.RegionID,
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
// @Summary Get user account
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Router /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user)
}

// ToggleActive godoc
// @Summary Toggle user account
// @Description Deactivation also revokes open sessions
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /users/{id}/toggle [patch]
func (h *UserHandler) ToggleActive(c *gin.Context) {
	user, err := h.service.ToggleActive(c.Request.Context(), c.Param("id"), actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, user)
}

// Delete godoc
// @Summary Delete user account
// @Description Accounts holding registrations are blocked with 412
// @Tags Users
// @Param id path string true "User ID"
// @Success 204 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), actorFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
