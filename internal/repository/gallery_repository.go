package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/eventra-live/eventra-admin-api/internal/models"
)

// GalleryRepository handles persistence for event gallery media.
type GalleryRepository struct {
	db *sqlx.DB
}

// NewGalleryRepository creates a new repository instance.
func NewGalleryRepository(db *sqlx.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

// ListPhotos returns an event's photos, newest first.
func (r *GalleryRepository) ListPhotos(ctx context.Context, eventID string) ([]models.GalleryPhoto, error) {
	const query = `SELECT id, event_id, category_id, image_url, caption, created_at FROM gallery_photos WHERE event_id = $1 ORDER BY created_at DESC`
	var photos []models.GalleryPhoto
	if err := r.db.SelectContext(ctx, &photos, query, eventID); err != nil {
		return nil, fmt.Errorf("list gallery photos: %w", err)
	}
	return photos, nil
}

// ListVideos returns an event's videos, newest first.
func (r *GalleryRepository) ListVideos(ctx context.Context, eventID string) ([]models.GalleryVideo, error) {
	const query = `SELECT id, event_id, video_url, caption, created_at FROM gallery_videos WHERE event_id = $1 ORDER BY created_at DESC`
	var videos []models.GalleryVideo
	if err := r.db.SelectContext(ctx, &videos, query, eventID); err != nil {
		return nil, fmt.Errorf("list gallery videos: %w", err)
	}
	return videos, nil
}

// CreatePhoto persists a new gallery photo.
func (r *GalleryRepository) CreatePhoto(ctx context.Context, photo *models.GalleryPhoto) error {
	if photo.ID == "" {
		photo.ID = uuid.NewString()
	}
	if photo.CreatedAt.IsZero() {
		photo.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO gallery_photos (id, event_id, category_id, image_url, caption, created_at) VALUES (:id, :event_id, :category_id, :image_url, :caption, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, photo); err != nil {
		return fmt.Errorf("create gallery photo: %w", err)
	}
	return nil
}

// CreateVideo persists a new gallery video.
func (r *GalleryRepository) CreateVideo(ctx context.Context, video *models.GalleryVideo) error {
	if video.ID == "" {
		video.ID = uuid.NewString()
	}
	if video.CreatedAt.IsZero() {
		video.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO gallery_videos (id, event_id, video_url, caption, created_at) VALUES (:id, :event_id, :video_url, :caption, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, video); err != nil {
		return fmt.Errorf("create gallery video: %w", err)
	}
	return nil
}

// DeletePhoto removes one photo record.
func (r *GalleryRepository) DeletePhoto(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM gallery_photos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete gallery photo: %w", err)
	}
	return nil
}

// DeleteVideo removes one video record.
func (r *GalleryRepository) DeleteVideo(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM gallery_videos WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete gallery video: %w", err)
	}
	return nil
}

// CountPhotosInCategory returns the number of photos referencing a category.
func (r *GalleryRepository) CountPhotosInCategory(ctx context.Context, categoryID string) (int, error) {
	const query = `SELECT COUNT(*) FROM gallery_photos WHERE category_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, categoryID); err != nil {
		return 0, fmt.Errorf("count photos in category: %w", err)
	}
	return count, nil
}
