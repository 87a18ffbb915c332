package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/eventra-live/eventra-admin-api/internal/models"
	appErrors "github.com/eventra-live/eventra-admin-api/pkg/errors"
)

type userRepository interface {
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	CountRegistrations(ctx context.Context, id string) (int, error)
	RevokeUserRefreshTokens(ctx context.Context, userID string) error
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// Actor identifies the admin performing a console operation, used for
// authorization checks and audit trails.
type Actor struct {
	ID        string
	Role      models.UserRole
	IP        string
	UserAgent string
}

// UserService implements member account administration.
type UserService struct {
	repo   userRepository
	logger *zap.Logger
}

// NewUserService constructs a UserService.
func NewUserService(repo userRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, logger: logger}
}

// List returns a paginated page of user accounts.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) (*models.Page, error) {
	users, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	return models.NewPage(users, total, filter.Page, filter.PageSize), nil
}

// Get returns a single user account.
func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}
	return user, nil
}

// ToggleActive flips the active flag on an account. Deactivating also
// revokes the account's refresh tokens so open sessions cannot renew.
func (s *UserService) ToggleActive(ctx context.Context, id string, actor Actor) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(user, actor); err != nil {
		return nil, err
	}

	user.Active = !user.Active
	if err := s.repo.SetActive(ctx, id, user.Active); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to toggle user")
	}

	if !user.Active {
		if err := s.repo.RevokeUserRefreshTokens(ctx, id); err != nil {
			s.logger.Warn("failed to revoke tokens for deactivated user", zap.String("userId", id), zap.Error(err))
		}
	}

	s.audit(ctx, actor, models.AuditActionUserToggle, id)
	return user, nil
}

// Delete removes an account. Accounts holding event registrations cannot
// be deleted.
func (s *UserService) Delete(ctx context.Context, id string, actor Actor) error {
	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(user, actor); err != nil {
		return err
	}
	if user.ID == actor.ID {
		return appErrors.Clone(appErrors.ErrForbidden, "cannot delete your own account")
	}

	regs, err := s.repo.CountRegistrations(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check user registrations")
	}
	if regs > 0 {
		return appErrors.Clone(appErrors.ErrInUse, fmt.Sprintf("user holds %d event registrations", regs))
	}

	if err := s.repo.RevokeUserRefreshTokens(ctx, id); err != nil {
		s.logger.Warn("failed to revoke tokens for deleted user", zap.String("userId", id), zap.Error(err))
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete user")
	}

	s.audit(ctx, actor, models.AuditActionUserDelete, id)
	s.logger.Info("user deleted", zap.String("id", id), zap.String("actor", actor.ID))
	return nil
}

// Only superadmins may act on admin or superadmin accounts.
func (s *UserService) authorize(target *models.User, actor Actor) error {
	if target.Role == models.RoleMember {
		return nil
	}
	if actor.Role != models.RoleSuperAdmin {
		return appErrors.Clone(appErrors.ErrForbidden, "insufficient privileges for this account")
	}
	return nil
}

func (s *UserService) audit(ctx context.Context, actor Actor, action, targetID string) {
	entry := &models.AuditLog{
		Action:     action,
		Resource:   "users",
		ResourceID: &targetID,
		IPAddress:  actor.IP,
		UserAgent:  actor.UserAgent,
		CreatedAt:  time.Now().UTC(),
	}
	if actor.ID != "" {
		entry.UserID = &actor.ID
	}
	if err := s.repo.CreateAuditLog(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit log", zap.String("action", action), zap.Error(err))
	}
}
