package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
)

type regionRepository interface {
	List(ctx context.Context, filter models.RegionFilter) ([]models.Region, int, error)
	FindByID(ctx context.Context, id string) (*models.Region, error)
	ExistsByCode(ctx context.Context, code string, excludeID string) (bool, error)
	Create(ctx context.Context, region *models.Region) error
	Update(ctx context.Context, region *models.Region) error
	Delete(ctx context.Context, id string) error
	CountUsers(ctx context.Context, id string) (int, error)
}

// RegionInput carries fields for creating or updating a region.
type RegionInput struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Code  string `json:"code" validate:"required,alphanum,min=2,max=10"`
	State string `json:"state" validate:"required,min=2,max=100"`
}

// RegionService implements region management rules.
type RegionService struct {
	repo      regionRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRegionService constructs a RegionService.
func NewRegionService(repo regionRepository, validate *validator.Validate, logger *zap.Logger) *RegionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &RegionService{repo: repo, validator: validate, logger: logger}
}

// List returns a paginated page of regions.
func (s *RegionService) List(ctx context.Context, filter models.RegionFilter) (*models.Page, error) {
	regions, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list regions")
	}
	return models.NewPage(regions, total, filter.Page, filter.PageSize), nil
}

// Get returns a single region.
func (s *RegionService) Get(ctx context.Context, id string) (*models.Region, error) {
	region, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "region not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch region")
	}
	return region, nil
}

// Create adds a new region. Codes are stored uppercase and must be unique.
func (s *RegionService) Create(ctx context.Context, input RegionInput) (*models.Region, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid region payload")
	}

	code := strings.ToUpper(input.Code)
	exists, err := s.repo.ExistsByCode(ctx, code, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check region code")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("region code %s already exists", code))
	}

	region := &models.Region{
		Name:  input.Name,
		Code:  code,
		State: input.State,
	}
	if err := s.repo.Create(ctx, region); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create region")
	}
	s.logger.Info("region created", zap.String("id", region.ID), zap.String("code", region.Code))
	return region, nil
}

// Update modifies an existing region.
func (s *RegionService) Update(ctx context.Context, id string, input RegionInput) (*models.Region, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid region payload")
	}

	region, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	code := strings.ToUpper(input.Code)
	exists, err := s.repo.ExistsByCode(ctx, code, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check region code")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("region code %s already exists", code))
	}

	region.Name = input.Name
	region.Code = code
	region.State = input.State
	if err := s.repo.Update(ctx, region); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update region")
	}
	return region, nil
}

// Delete removes a region. Regions with assigned members cannot be deleted.
func (s *RegionService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	users, err := s.repo.CountUsers(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check region usage")
	}
	if users > 0 {
		return appErrors.Clone(appErrors.ErrInUse, fmt.Sprintf("region has %d assigned members", users))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete region")
	}
	s.logger.Info("region deleted", zap.String("id", id))
	return nil
}
