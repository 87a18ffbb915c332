package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventra-live/eventra-admin-api/internal/service"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
	"github.com/eventra-live/eventra-admin-api/pkg/response"
)

// ExportHandler wires HTTP endpoints to the export service.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Create godoc
// @Summary Queue a registration export
// @Description Generates a CSV or PDF registration list in the background
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body service.ExportRequest true "Export options"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /exports [post]
func (h *ExportHandler) Create(c *gin.Context) {
	var req service.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}

	job, err := h.service.Enqueue(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job)
}

// Get godoc
// @Summary Export job status
// @Tags Exports
// @Produce json
// @Param id path string true "Export job ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exports/{id} [get]
func (h *ExportHandler) Get(c *gin.Context) {
	job, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job)
}

// List godoc
// @Summary Recent export jobs for the caller
// @Tags Exports
// @Produce json
// @Param limit query int false "Max results"
// @Success 200 {object} response.Envelope
// @Router /exports [get]
func (h *ExportHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	jobs, err := h.service.ListByUser(c.Request.Context(), claims.UserID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, jobs)
}

// Download godoc
// @Summary Download a finished export
// @Description Streams the file referenced by a signed token
// @Tags Exports
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exports/download [get]
func (h *ExportHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}

	file, job, err := h.service.Download(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	filename := fmt.Sprintf("registrations-%s%s", job.ID, filepath.Ext(file.Name()))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/octet-stream")

	http.ServeContent(c.Writer, c.Request, filename, job.CreatedAt, file)
}
