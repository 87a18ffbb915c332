package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	"github.com/eventra-live/eventra-admin-api/internal/service"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
	"github.com/eventra-live/eventra-admin-api/pkg/response"
	"github.com/eventra-live/eventra-admin-api/pkg/storage"
)

const maxUploadBytes = 10 << 20

// EventHandler wires HTTP endpoints to the event service.
type EventHandler struct {
	service *service.EventService
	storage *storage.LocalStorage
}

// NewEventHandler creates a new handler.
func NewEventHandler(svc *service.EventService, store *storage.LocalStorage) *EventHandler {
	return &EventHandler{service: svc, storage: store}
}

type eventListRequest struct {
	listRequest
	EventType string     `json:"eventType"`
	IsActive  *bool      `json:"isActive"`
	From      *time.Time `json:"from"`
	To        *time.Time `json:"to"`
}

// List godoc
// @Summary List events
// @Description Paginated event listing with filters
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body eventListRequest true "List options"
// @Success 200 {object} response.Envelope
// @Router /events/list [post]
func (h *EventHandler) List(c *gin.Context) {
	var req eventListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid list payload"))
		return
	}

	page, err := h.service.List(c.Request.Context(), models.EventFilter{
		EventType: req.EventType,
		Active:    req.IsActive,
		From:      req.From,
		To:        req.To,
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
// @Summary Get event
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event)
}

// Create godoc
// @Summary Create event
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body service.EventInput true "Event payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var input service.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid event payload"))
		return
	}

	event, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, event)
}

// Update godoc
// @Summary Update event
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body service.EventInput true "Event payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	var input service.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid event payload"))
		return
	}

	event, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event)
}

// ToggleActive godoc
// @Summary Toggle event visibility
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/toggle [patch]
func (h *EventHandler) ToggleActive(c *gin.Context) {
	event, err := h.service.ToggleActive(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete event
// @Description Events with registrations cannot be deleted
// @Tags Events
// @Param id path string true "Event ID"
// @Success 204 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UploadBanner godoc
// @Summary Upload event banner image
// @Tags Events
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Event ID"
// @Param file formData file true "Banner image"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/banner [post]
func (h *EventHandler) UploadBanner(c *gin.Context) {
	eventID := c.Param("id")
	event, err := h.service.Get(c.Request.Context(), eventID)
	if err != nil {
		response.Error(c, err)
		return
	}

	relPath, err := saveImageUpload(c, h.storage, "banners")
	if err != nil {
		response.Error(c, err)
		return
	}

	input := eventToInput(event)
	input.BannerImage = relPath
	updated, err := h.service.Update(c.Request.Context(), eventID, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// Gallery godoc
// @Summary Event gallery
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/gallery [get]
func (h *EventHandler) Gallery(c *gin.Context) {
	gallery, err := h.service.Gallery(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gallery)
}

// AddPhoto godoc
// @Summary Attach gallery photo
// @Tags Events
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Event ID"
// @Param file formData file true "Photo"
// @Param categoryId formData string false "Category ID"
// @Param caption formData string false "Caption"
// @Success 201 {object} response.Envelope
// @Router /events/{id}/gallery/photos [post]
func (h *EventHandler) AddPhoto(c *gin.Context) {
	relPath, err := saveImageUpload(c, h.storage, "gallery")
	if err != nil {
		response.Error(c, err)
		return
	}

	input := service.GalleryPhotoInput{
		ImageURL: relPath,
		Caption:  c.PostForm("caption"),
	}
	if categoryID := c.PostForm("categoryId"); categoryID != "" {
		input.CategoryID = &categoryID
	}

	photo, err := h.service.AddPhoto(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, photo)
}

// AddVideo godoc
// @Summary Attach gallery video link
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body service.GalleryVideoInput true "Video payload"
// @Success 201 {object} response.Envelope
// @Router /events/{id}/gallery/videos [post]
func (h *EventHandler) AddVideo(c *gin.Context) {
	var input service.GalleryVideoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid video payload"))
		return
	}

	video, err := h.service.AddVideo(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, video)
}

// RemovePhoto godoc
// @Summary Delete gallery photo
// @Tags Events
// @Param photoId path string true "Photo ID"
// @Success 204 {object} response.Envelope
// @Router /events/{id}/gallery/photos/{photoId} [delete]
func (h *EventHandler) RemovePhoto(c *gin.Context) {
	if err := h.service.RemovePhoto(c.Request.Context(), c.Param("photoId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RemoveVideo godoc
// @Summary Delete gallery video
// @Tags Events
// @Param videoId path string true "Video ID"
// @Success 204 {object} response.Envelope
// @Router /events/{id}/gallery/videos/{videoId} [delete]
func (h *EventHandler) RemoveVideo(c *gin.Context) {
	if err := h.service.RemoveVideo(c.Request.Context(), c.Param("videoId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func saveImageUpload(c *gin.Context, store *storage.LocalStorage, dir string) (string, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return "", appErrors.Clone(appErrors.ErrFileTooLarge, "file exceeds the 10MB limit")
	}

	switch fileHeader.Header.Get("Content-Type") {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return "", appErrors.Clone(appErrors.ErrUnsupportedMedia, "only jpeg, png and webp images are accepted")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload")
	}
	defer file.Close() //nolint:errcheck

	relPath, err := store.SaveUpload(dir, fileHeader.Filename, file)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store upload")
	}
	return relPath, nil
}

func eventToInput(event *models.Event) service.EventInput {
	return service.EventInput{
		Title:                event.Title,
		Description:          event.Description,
		StartDate:            event.StartDate,
		EndDate:              event.EndDate,
		StartTime:            event.StartTime,
		EndTime:              event.EndTime,
		Location:             event.Location,
		Venue:                event.Venue,
		MapURL:               event.MapURL,
		EventType:            event.EventType,
		Capacity:             event.Capacity,
		TicketPrice:          event.TicketPrice,
		MaxRegistrations:     event.MaxRegistrations,
		RegistrationDeadline: event.RegistrationDeadline,
		BannerImage:          event.BannerImage,
		Sponsors:             event.Sponsors,
		Speakers:             event.Speakers,
		Schedules:            event.Schedules,
		Active:               &event.Active,
	}
}
