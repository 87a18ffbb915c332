package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
)

type bannerRateRepository interface {
	List(ctx context.Context, filter models.BannerRateFilter) ([]models.BannerRate, int, error)
	FindByID(ctx context.Context, id string) (*models.BannerRate, error)
	ExistsByDays(ctx context.Context, days int, excludeID string) (bool, error)
	Create(ctx context.Context, rate *models.BannerRate) error
	Update(ctx context.Context, rate *models.BannerRate) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	CountActiveAds(ctx context.Context, id string) (int, error)
}

// BannerRateInput carries fields for creating or updating a pricing tier.
type BannerRateInput struct {
	Days   int     `json:"days" validate:"required,min=1,max=365"`
	Cost   float64 `json:"cost" validate:"required,gt=0"`
	Active *bool   `json:"isActive"`
}

// BannerRateService implements banner rate management rules.
type BannerRateService struct {
	repo      bannerRateRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBannerRateService constructs a BannerRateService.
func NewBannerRateService(repo bannerRateRepository, validate *validator.Validate, logger *zap.Logger) *BannerRateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &BannerRateService{repo: repo, validator: validate, logger: logger}
}

// List returns a paginated page of banner rates.
func (s *BannerRateService) List(ctx context.Context, filter models.BannerRateFilter) (*models.Page, error) {
	rates, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list banner rates")
	}
	return models.NewPage(rates, total, filter.Page, filter.PageSize), nil
}

// Get returns a single banner rate.
func (s *BannerRateService) Get(ctx context.Context, id string) (*models.BannerRate, error) {
	rate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "banner rate not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch banner rate")
	}
	return rate, nil
}

// Create adds a new pricing tier. The day count must be unique.
func (s *BannerRateService) Create(ctx context.Context, input BannerRateInput) (*models.BannerRate, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid banner rate payload")
	}

	exists, err := s.repo.ExistsByDays(ctx, input.Days, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check banner rate uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("a rate for %d days already exists", input.Days))
	}

	rate := &models.BannerRate{
		Days:   input.Days,
		Cost:   input.Cost,
		Active: true,
	}
	if input.Active != nil {
		rate.Active = *input.Active
	}

	if err := s.repo.Create(ctx, rate); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create banner rate")
	}
	s.logger.Info("banner rate created", zap.String("id", rate.ID), zap.Int("days", rate.Days))
	return rate, nil
}

// Update modifies an existing pricing tier.
func (s *BannerRateService) Update(ctx context.Context, id string, input BannerRateInput) (*models.BannerRate, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid banner rate payload")
	}

	rate, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByDays(ctx, input.Days, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check banner rate uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("a rate for %d days already exists", input.Days))
	}

	rate.Days = input.Days
	rate.Cost = input.Cost
	if input.Active != nil {
		rate.Active = *input.Active
	}

	if err := s.repo.Update(ctx, rate); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update banner rate")
	}
	return rate, nil
}

// ToggleActive flips the availability of a pricing tier.
func (s *BannerRateService) ToggleActive(ctx context.Context, id string) (*models.BannerRate, error) {
	rate, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	rate.Active = !rate.Active
	if err := s.repo.SetActive(ctx, id, rate.Active); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to toggle banner rate")
	}
	return rate, nil
}

// Delete removes a pricing tier. Rates referenced by running ads cannot be
// deleted.
func (s *BannerRateService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	inUse, err := s.repo.CountActiveAds(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check banner rate usage")
	}
	if inUse > 0 {
		return appErrors.Clone(appErrors.ErrInUse, fmt.Sprintf("rate is used by %d running ads", inUse))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete banner rate")
	}
	s.logger.Info("banner rate deleted", zap.String("id", id))
	return nil
}
