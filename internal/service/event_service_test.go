package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
)

type mockEventRepo struct {
	event         *models.Event
	registrations int
	deleteCalls   int
}

func (m *mockEventRepo) List(_ context.Context, _ models.EventFilter) ([]models.Event, int, error) {
	if m.event == nil {
		return nil, 0, nil
	}
	return []models.Event{*m.event}, 1, nil
}

func (m *mockEventRepo) FindByID(_ context.Context, id string) (*models.Event, error) {
	if m.event == nil || m.event.ID != id {
		return nil, sql.ErrNoRows
	}
	copied := *m.event
	return &copied, nil
}

func (m *mockEventRepo) Create(_ context.Context, event *models.Event) error {
	event.ID = "ev-new"
	return nil
}

func (m *mockEventRepo) Update(_ context.Context, _ *models.Event) error { return nil }

func (m *mockEventRepo) SetActive(_ context.Context, _ string, _ bool) error { return nil }

func (m *mockEventRepo) Delete(_ context.Context, _ string) error {
	m.deleteCalls++
	return nil
}

func (m *mockEventRepo) CountRegistrations(_ context.Context, _ string) (int, error) {
	return m.registrations, nil
}

type mockGalleryRepo struct {
	photos    []models.GalleryPhoto
	videos    []models.GalleryVideo
	photosErr error
	videosErr error
}

func (m *mockGalleryRepo) ListPhotos(_ context.Context, _ string) ([]models.GalleryPhoto, error) {
	return m.photos, m.photosErr
}

func (m *mockGalleryRepo) ListVideos(_ context.Context, _ string) ([]models.GalleryVideo, error) {
	return m.videos, m.videosErr
}

func (m *mockGalleryRepo) CreatePhoto(_ context.Context, photo *models.GalleryPhoto) error {
	photo.ID = "photo-new"
	return nil
}

func (m *mockGalleryRepo) CreateVideo(_ context.Context, video *models.GalleryVideo) error {
	video.ID = "video-new"
	return nil
}

func (m *mockGalleryRepo) DeletePhoto(_ context.Context, _ string) error { return nil }

func (m *mockGalleryRepo) DeleteVideo(_ context.Context, _ string) error { return nil }

func validEventInput() EventInput {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return EventInput{
		Title:       "Annual Conference",
		Description: "Two days of talks",
		StartDate:   start,
		EndDate:     start.AddDate(0, 0, 1),
		StartTime:   "09:00",
		EndTime:     "18:00",
		Location:    "Mumbai",
		Venue:       "Grand Hall",
		EventType:   "conference",
		Capacity:    500,
	}
}

func TestEventServiceCreateRejectsReversedDates(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, &mockGalleryRepo{}, nil, zap.NewNop())

	input := validEventInput()
	input.EndDate = input.StartDate.AddDate(0, 0, -1)
	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEventServiceCreateRejectsLateDeadline(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, &mockGalleryRepo{}, nil, zap.NewNop())

	input := validEventInput()
	deadline := input.StartDate.AddDate(0, 0, 2)
	input.RegistrationDeadline = &deadline
	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEventServiceDeleteBlockedByRegistrations(t *testing.T) {
	repo := &mockEventRepo{event: &models.Event{ID: "ev-1"}, registrations: 12}
	svc := NewEventService(repo, &mockGalleryRepo{}, nil, zap.NewNop())

	err := svc.Delete(context.Background(), "ev-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInUse.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.deleteCalls)
}

func TestEventServiceGalleryDegradesOnMediaErrors(t *testing.T) {
	repo := &mockEventRepo{event: &models.Event{ID: "ev-1"}}
	gallery := &mockGalleryRepo{
		photosErr: assert.AnError,
		videos:    []models.GalleryVideo{{ID: "vid-1", EventID: "ev-1"}},
	}
	svc := NewEventService(repo, gallery, nil, zap.NewNop())

	result, err := svc.Gallery(context.Background(), "ev-1")
	require.NoError(t, err)
	assert.Empty(t, result.Photos)
	assert.Len(t, result.Videos, 1)
}

func TestEventServiceGalleryUnknownEvent(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, &mockGalleryRepo{}, nil, zap.NewNop())

	_, err := svc.Gallery(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEventServiceAddPhotoChecksEvent(t *testing.T) {
	svc := NewEventService(&mockEventRepo{}, &mockGalleryRepo{}, nil, zap.NewNop())

	_, err := svc.AddPhoto(context.Background(), "missing", GalleryPhotoInput{ImageURL: "uploads/p.jpg"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
