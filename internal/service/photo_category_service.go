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

type photoCategoryRepository interface {
	List(ctx context.Context, filter models.PhotoCategoryFilter) ([]models.PhotoCategory, int, error)
	FindByID(ctx context.Context, id string) (*models.PhotoCategory, error)
	ExistsByName(ctx context.Context, name string, excludeID string) (bool, error)
	Create(ctx context.Context, category *models.PhotoCategory) error
	Update(ctx context.Context, category *models.PhotoCategory) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type categoryPhotoCounter interface {
	CountPhotosInCategory(ctx context.Context, categoryID string) (int, error)
}

// PhotoCategoryInput carries fields for creating or updating a category.
type PhotoCategoryInput struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"max=500"`
	Active      *bool  `json:"isActive"`
}

// PhotoCategoryService implements gallery category management rules.
type PhotoCategoryService struct {
	repo      photoCategoryRepository
	photos    categoryPhotoCounter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPhotoCategoryService constructs a PhotoCategoryService.
func NewPhotoCategoryService(repo photoCategoryRepository, photos categoryPhotoCounter, validate *validator.Validate, logger *zap.Logger) *PhotoCategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &PhotoCategoryService{repo: repo, photos: photos, validator: validate, logger: logger}
}

// List returns a paginated page of categories.
func (s *PhotoCategoryService) List(ctx context.Context, filter models.PhotoCategoryFilter) (*models.Page, error) {
	categories, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list photo categories")
	}
	return models.NewPage(categories, total, filter.Page, filter.PageSize), nil
}

// Get returns a single category.
func (s *PhotoCategoryService) Get(ctx context.Context, id string) (*models.PhotoCategory, error) {
	category, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "photo category not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch photo category")
	}
	return category, nil
}

// Create adds a new category with a unique name.
func (s *PhotoCategoryService) Create(ctx context.Context, input PhotoCategoryInput) (*models.PhotoCategory, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid photo category payload")
	}

	exists, err := s.repo.ExistsByName(ctx, input.Name, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check category name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("category %q already exists", input.Name))
	}

	category := &models.PhotoCategory{
		Name:        input.Name,
		Description: input.Description,
		Active:      true,
	}
	if input.Active != nil {
		category.Active = *input.Active
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create photo category")
	}
	s.logger.Info("photo category created", zap.String("id", category.ID), zap.String("name", category.Name))
	return category, nil
}

// Update modifies an existing category.
func (s *PhotoCategoryService) Update(ctx context.Context, id string, input PhotoCategoryInput) (*models.PhotoCategory, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid photo category payload")
	}

	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByName(ctx, input.Name, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check category name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("category %q already exists", input.Name))
	}

	category.Name = input.Name
	category.Description = input.Description
	if input.Active != nil {
		category.Active = *input.Active
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update photo category")
	}
	return category, nil
}

// ToggleActive flips the visibility of a category.
func (s *PhotoCategoryService) ToggleActive(ctx context.Context, id string) (*models.PhotoCategory, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	category.Active = !category.Active
	if err := s.repo.SetActive(ctx, id, category.Active); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to toggle photo category")
	}
	return category, nil
}

// Delete removes a category. Categories still holding photos cannot be
// deleted.
func (s *PhotoCategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	photos, err := s.photos.CountPhotosInCategory(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check category usage")
	}
	if photos > 0 {
		return appErrors.Clone(appErrors.ErrInUse, fmt.Sprintf("category holds %d photos", photos))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete photo category")
	}
	s.logger.Info("photo category deleted", zap.String("id", id))
	return nil
}
