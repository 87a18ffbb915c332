package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
)

type complaintRepository interface {
	List(ctx context.Context, filter models.ComplaintFilter) ([]models.Complaint, int, error)
	FindByID(ctx context.Context, id string) (*models.Complaint, error)
	UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) error
	Delete(ctx context.Context, id string) error
}

// ComplaintService implements complaint triage for the console.
type ComplaintService struct {
	repo   complaintRepository
	logger *zap.Logger
}

// NewComplaintService constructs a ComplaintService.
func NewComplaintService(repo complaintRepository, logger *zap.Logger) *ComplaintService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplaintService{repo: repo, logger: logger}
}

// List returns a paginated page of complaints.
func (s *ComplaintService) List(ctx context.Context, filter models.ComplaintFilter) (*models.Page, error) {
	complaints, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list complaints")
	}
	return models.NewPage(complaints, total, filter.Page, filter.PageSize), nil
}

// Get returns a single complaint.
func (s *ComplaintService) Get(ctx context.Context, id string) (*models.Complaint, error) {
	complaint, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "complaint not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch complaint")
	}
	return complaint, nil
}

// UpdateStatus moves the complaint to the given workflow state. Resolving
// stamps resolved_at; leaving resolved clears it.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) (*models.Complaint, error) {
	if !models.ValidComplaintStatus(status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown complaint status %q", status))
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update complaint status")
	}
	s.logger.Info("complaint status updated", zap.String("id", id), zap.String("status", string(status)))
	return s.Get(ctx, id)
}

// Delete removes a complaint record.
func (s *ComplaintService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete complaint")
	}
	return nil
}
