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

type registrationRepository interface {
	List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, int, error)
	FindByID(ctx context.Context, id string) (*models.Registration, error)
	UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) error
	Delete(ctx context.Context, id string) error
}

// RegistrationService implements registration administration.
type RegistrationService struct {
	repo   registrationRepository
	logger *zap.Logger
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(repo registrationRepository, logger *zap.Logger) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{repo: repo, logger: logger}
}

// List returns a paginated page of registrations.
func (s *RegistrationService) List(ctx context.Context, filter models.RegistrationFilter) (*models.Page, error) {
	regs, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}
	return models.NewPage(regs, total, filter.Page, filter.PageSize), nil
}

// Get returns a single registration.
func (s *RegistrationService) Get(ctx context.Context, id string) (*models.Registration, error) {
	reg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "registration not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch registration")
	}
	return reg, nil
}

// UpdatePaymentStatus moves the registration to the given payment state.
func (s *RegistrationService) UpdatePaymentStatus(ctx context.Context, id string, status models.PaymentStatus) (*models.Registration, error) {
	if !models.ValidPaymentStatus(status) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown payment status %q", status))
	}

	reg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePaymentStatus(ctx, id, status); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update payment status")
	}
	s.logger.Info("registration payment status updated",
		zap.String("id", id),
		zap.String("from", string(reg.PaymentStatus)),
		zap.String("to", string(status)))
	reg.PaymentStatus = status
	return reg, nil
}

// Delete removes a registration record.
func (s *RegistrationService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete registration")
	}
	return nil
}
