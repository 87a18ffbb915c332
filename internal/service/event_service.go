package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
)

type eventRepository interface {
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error)
	FindByID(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, event *models.Event) error
	Update(ctx context.Context, event *models.Event) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	CountRegistrations(ctx context.Context, id string) (int, error)
}

type galleryRepository interface {
	ListPhotos(ctx context.Context, eventID string) ([]models.GalleryPhoto, error)
	ListVideos(ctx context.Context, eventID string) ([]models.GalleryVideo, error)
	CreatePhoto(ctx context.Context, photo *models.GalleryPhoto) error
	CreateVideo(ctx context.Context, video *models.GalleryVideo) error
	DeletePhoto(ctx context.Context, id string) error
	DeleteVideo(ctx context.Context, id string) error
}

// EventInput carries fields for creating or updating an event.
type EventInput struct {
	Title                string              `json:"title" validate:"required,min=3,max=200"`
	Description          string              `json:"description" validate:"required"`
	StartDate            time.Time           `json:"startDate" validate:"required"`
	EndDate              time.Time           `json:"endDate" validate:"required"`
	StartTime            string              `json:"startTime" validate:"required"`
	EndTime              string              `json:"endTime" validate:"required"`
	Location             string              `json:"location" validate:"required"`
	Venue                string              `json:"venue" validate:"required"`
	MapURL               string              `json:"mapUrl" validate:"omitempty,url"`
	EventType            string              `json:"eventType" validate:"required"`
	Capacity             int                 `json:"capacity" validate:"min=0"`
	TicketPrice          float64             `json:"ticketPrice" validate:"min=0"`
	MaxRegistrations     int                 `json:"maxRegistrations" validate:"min=0"`
	RegistrationDeadline *time.Time          `json:"registrationDeadline"`
	BannerImage          string              `json:"bannerImage"`
	Sponsors             models.SponsorList  `json:"sponsors"`
	Speakers             models.SpeakerList  `json:"speakers"`
	Schedules            models.ScheduleList `json:"schedules"`
	Active               *bool               `json:"isActive"`
}

// GalleryPhotoInput carries fields for attaching a photo to an event.
type GalleryPhotoInput struct {
	CategoryID *string `json:"categoryId"`
	ImageURL   string  `json:"imageUrl" validate:"required,max=500"`
	Caption    string  `json:"caption" validate:"max=300"`
}

// GalleryVideoInput carries fields for attaching a video to an event.
type GalleryVideoInput struct {
	VideoURL string `json:"videoUrl" validate:"required,max=500"`
	Caption  string `json:"caption" validate:"max=300"`
}

// EventService implements event lifecycle and gallery management.
type EventService struct {
	repo      eventRepository
	gallery   galleryRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEventService constructs an EventService.
func NewEventService(repo eventRepository, gallery galleryRepository, validate *validator.Validate, logger *zap.Logger) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &EventService{repo: repo, gallery: gallery, validator: validate, logger: logger}
}

// List returns a paginated page of events.
func (s *EventService) List(ctx context.Context, filter models.EventFilter) (*models.Page, error) {
	events, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list events")
	}
	return models.NewPage(events, total, filter.Page, filter.PageSize), nil
}

// Get returns a single event.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch event")
	}
	return event, nil
}

// Create adds a new event.
func (s *EventService) Create(ctx context.Context, input EventInput) (*models.Event, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	event := &models.Event{Active: true}
	applyEventInput(event, input)
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create event")
	}
	s.logger.Info("event created", zap.String("id", event.ID), zap.String("title", event.Title))
	return event, nil
}

// Update modifies an existing event.
func (s *EventService) Update(ctx context.Context, id string, input EventInput) (*models.Event, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	applyEventInput(event, input)
	if err := s.repo.Update(ctx, event); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update event")
	}
	return event, nil
}

// ToggleActive flips event visibility.
func (s *EventService) ToggleActive(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	event.Active = !event.Active
	if err := s.repo.SetActive(ctx, id, event.Active); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to toggle event")
	}
	return event, nil
}

// Delete removes an event. Events with registrations cannot be deleted.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	regs, err := s.repo.CountRegistrations(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check event registrations")
	}
	if regs > 0 {
		return appErrors.Clone(appErrors.ErrInUse, fmt.Sprintf("event has %d registrations", regs))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete event")
	}
	s.logger.Info("event deleted", zap.String("id", id))
	return nil
}

// Gallery returns the event's media. A failing media lookup degrades to an
// empty slice so the event page still renders.
func (s *EventService) Gallery(ctx context.Context, eventID string) (*models.Gallery, error) {
	if _, err := s.Get(ctx, eventID); err != nil {
		return nil, err
	}

	gallery := &models.Gallery{Photos: []models.GalleryPhoto{}, Videos: []models.GalleryVideo{}}

	photos, err := s.gallery.ListPhotos(ctx, eventID)
	if err != nil {
		s.logger.Warn("failed to load gallery photos", zap.String("eventId", eventID), zap.Error(err))
	} else if photos != nil {
		gallery.Photos = photos
	}

	videos, err := s.gallery.ListVideos(ctx, eventID)
	if err != nil {
		s.logger.Warn("failed to load gallery videos", zap.String("eventId", eventID), zap.Error(err))
	} else if videos != nil {
		gallery.Videos = videos
	}

	return gallery, nil
}

// AddPhoto attaches a photo to the event gallery.
func (s *EventService) AddPhoto(ctx context.Context, eventID string, input GalleryPhotoInput) (*models.GalleryPhoto, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid gallery photo payload")
	}
	if _, err := s.Get(ctx, eventID); err != nil {
		return nil, err
	}

	photo := &models.GalleryPhoto{
		EventID:    eventID,
		CategoryID: input.CategoryID,
		ImageURL:   input.ImageURL,
		Caption:    input.Caption,
	}
	if err := s.gallery.CreatePhoto(ctx, photo); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add gallery photo")
	}
	return photo, nil
}

// AddVideo attaches a video to the event gallery.
func (s *EventService) AddVideo(ctx context.Context, eventID string, input GalleryVideoInput) (*models.GalleryVideo, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid gallery video payload")
	}
	if _, err := s.Get(ctx, eventID); err != nil {
		return nil, err
	}

	video := &models.GalleryVideo{
		EventID:  eventID,
		VideoURL: input.VideoURL,
		Caption:  input.Caption,
	}
	if err := s.gallery.CreateVideo(ctx, video); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add gallery video")
	}
	return video, nil
}

// RemovePhoto deletes a gallery photo.
func (s *EventService) RemovePhoto(ctx context.Context, photoID string) error {
	if err := s.gallery.DeletePhoto(ctx, photoID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete gallery photo")
	}
	return nil
}

// RemoveVideo deletes a gallery video.
func (s *EventService) RemoveVideo(ctx context.Context, videoID string) error {
	if err := s.gallery.DeleteVideo(ctx, videoID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete gallery video")
	}
	return nil
}

func (s *EventService) validateInput(input EventInput) error {
	if err := s.validator.Struct(input); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	if input.EndDate.Before(input.StartDate) {
		return appErrors.Clone(appErrors.ErrValidation, "endDate cannot be before startDate")
	}
	if input.RegistrationDeadline != nil && input.RegistrationDeadline.After(input.StartDate) {
		return appErrors.Clone(appErrors.ErrValidation, "registrationDeadline must fall before startDate")
	}
	return nil
}

func applyEventInput(event *models.Event, input EventInput) {
	event.Title = input.Title
	event.Description = input.Description
	event.StartDate = input.StartDate
	event.EndDate = input.EndDate
	event.StartTime = input.StartTime
	event.EndTime = input.EndTime
	event.Location = input.Location
	event.Venue = input.Venue
	event.MapURL = input.MapURL
	event.EventType = input.EventType
	event.Capacity = input.Capacity
	event.TicketPrice = input.TicketPrice
	event.MaxRegistrations = input.MaxRegistrations
	event.RegistrationDeadline = input.RegistrationDeadline
	if input.BannerImage != "" {
		event.BannerImage = input.BannerImage
	}
	event.Sponsors = input.Sponsors
	event.Speakers = input.Speakers
	event.Schedules = input.Schedules
	if input.Active != nil {
		event.Active = *input.Active
	}
}
