package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
)

type feedbackRepository interface {
	List(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, int, error)
	FindByID(ctx context.Context, id string) (*models.Feedback, error)
	Delete(ctx context.Context, id string) error
}

// FeedbackService exposes read and cleanup operations for member feedback.
type FeedbackService struct {
	repo   feedbackRepository
	logger *zap.Logger
}

// NewFeedbackService constructs a FeedbackService.
func NewFeedbackService(repo feedbackRepository, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{repo: repo, logger: logger}
}

// List returns a paginated page of feedback entries.
func (s *FeedbackService) List(ctx context.Context, filter models.FeedbackFilter) (*models.Page, error) {
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list feedback")
	}
	return models.NewPage(entries, total, filter.Page, filter.PageSize), nil
}

// Get returns a single feedback entry.
func (s *FeedbackService) Get(ctx context.Context, id string) (*models.Feedback, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "feedback not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch feedback")
	}
	return entry, nil
}

// Delete removes a feedback entry.
func (s *FeedbackService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete feedback")
	}
	s.logger.Info("feedback deleted", zap.String("id", id))
	return nil
}
