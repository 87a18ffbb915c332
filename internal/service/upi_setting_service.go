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

type upiSettingRepository interface {
	List(ctx context.Context, filter models.UPISettingFilter) ([]models.UPISetting, int, error)
	FindByID(ctx context.Context, id string) (*models.UPISetting, error)
	ExistsByUPIID(ctx context.Context, upiID string, excludeID string) (bool, error)
	Create(ctx context.Context, setting *models.UPISetting) error
	Update(ctx context.Context, setting *models.UPISetting) error
	Activate(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// UPISettingInput carries fields for creating or updating a UPI identity.
type UPISettingInput struct {
	UPIID       string `json:"upiId" validate:"required,contains=@,min=3,max=100"`
	DisplayName string `json:"displayName" validate:"required,min=2,max=100"`
	QRImage     string `json:"qrImage" validate:"max=500"`
}

// UPISettingService implements payment identity management. At most one
// setting stays active.
type UPISettingService struct {
	repo      upiSettingRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUPISettingService constructs a UPISettingService.
func NewUPISettingService(repo upiSettingRepository, validate *validator.Validate, logger *zap.Logger) *UPISettingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UPISettingService{repo: repo, validator: validate, logger: logger}
}

// List returns a paginated page of UPI settings.
func (s *UPISettingService) List(ctx context.Context, filter models.UPISettingFilter) (*models.Page, error) {
	settings, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list UPI settings")
	}
	return models.NewPage(settings, total, filter.Page, filter.PageSize), nil
}

// Get returns a single UPI setting.
func (s *UPISettingService) Get(ctx context.Context, id string) (*models.UPISetting, error) {
	setting, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "UPI setting not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch UPI setting")
	}
	return setting, nil
}

// Create adds a new UPI identity. New settings start inactive and must be
// activated explicitly.
func (s *UPISettingService) Create(ctx context.Context, input UPISettingInput) (*models.UPISetting, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid UPI setting payload")
	}

	exists, err := s.repo.ExistsByUPIID(ctx, input.UPIID, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check UPI id")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("UPI id %s already exists", input.UPIID))
	}

	setting := &models.UPISetting{
		UPIID:       input.UPIID,
		DisplayName: input.DisplayName,
		QRImage:     input.QRImage,
		Active:      false,
	}
	if err := s.repo.Create(ctx, setting); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create UPI setting")
	}
	s.logger.Info("UPI setting created", zap.String("id", setting.ID))
	return setting, nil
}

// Update modifies an existing UPI identity.
func (s *UPISettingService) Update(ctx context.Context, id string, input UPISettingInput) (*models.UPISetting, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid UPI setting payload")
	}

	setting, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByUPIID(ctx, input.UPIID, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check UPI id")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("UPI id %s already exists", input.UPIID))
	}

	setting.UPIID = input.UPIID
	setting.DisplayName = input.DisplayName
	setting.QRImage = input.QRImage
	if err := s.repo.Update(ctx, setting); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update UPI setting")
	}
	return setting, nil
}

// Activate makes the setting the sole active payment identity. Other
// settings are deactivated in the same transaction.
func (s *UPISettingService) Activate(ctx context.Context, id string) (*models.UPISetting, error) {
	setting, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Activate(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to activate UPI setting")
	}
	setting.Active = true
	s.logger.Info("UPI setting activated", zap.String("id", id))
	return setting, nil
}

// Deactivate switches the setting off, leaving no active identity.
func (s *UPISettingService) Deactivate(ctx context.Context, id string) (*models.UPISetting, error) {
	setting, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate UPI setting")
	}
	setting.Active = false
	return setting, nil
}

// Delete removes a UPI identity. The active setting cannot be deleted.
func (s *UPISettingService) Delete(ctx context.Context, id string) error {
	setting, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if setting.Active {
		return appErrors.Clone(appErrors.ErrInUse, "active UPI setting cannot be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete UPI setting")
	}
	s.logger.Info("UPI setting deleted", zap.String("id", id))
	return nil
}
