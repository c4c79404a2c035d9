package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tesorapp/tesoreria_backend/internal/apperrors"
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/tesorapp/tesoreria_backend/internal/core/ports/repositories"
	portssvc "github.com/tesorapp/tesoreria_backend/internal/core/ports/services"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
	"github.com/tesorapp/tesoreria_backend/internal/middleware"
)

// UserService handles user administration. Role changes and deactivation are
// administrator-only.
type UserService struct {
	userRepo portsrepo.UserRepository
}

// NewUserService creates the user service.
func NewUserService(userRepo portsrepo.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

func (s *UserService) admin(ctx context.Context, actorID string) (*domain.User, error) {
	actor, err := s.userRepo.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanManageUsers() {
		return nil, fmt.Errorf("%w: role %s cannot manage users", apperrors.ErrForbidden, actor.Role)
	}
	return actor, nil
}

// GetUserByID retrieves a single user.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

// ListUsers retrieves every member. Administrator only.
func (s *UserService) ListUsers(ctx context.Context, actorID string) ([]domain.User, error) {
	if _, err := s.admin(ctx, actorID); err != nil {
		return nil, err
	}

	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// UpdateUserRole changes a member's role. Administrators cannot demote
// themselves, so the system always keeps at least one administrator.
func (s *UserService) UpdateUserRole(ctx context.Context, actorID, userID string, req dto.UpdateUserRoleRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.admin(ctx, actorID); err != nil {
		return nil, err
	}
	role := domain.Role(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}
	if actorID == userID && !role.CanManageUsers() {
		return nil, fmt.Errorf("%w: administrators cannot demote themselves", apperrors.ErrValidation)
	}

	user, err := s.userRepo.UpdateUserRole(ctx, userID, role)
	if err != nil {
		logger.Error("Failed to update user role", slog.String("error", err.Error()), slog.String("target_user_id", userID))
		return nil, err
	}

	logger.Info("User role updated", slog.String("target_user_id", userID), slog.String("role", req.Role))
	return user, nil
}

// SetUserActive enables or disables a member's access. Administrators cannot
// deactivate themselves.
func (s *UserService) SetUserActive(ctx context.Context, actorID, userID string, active bool) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.admin(ctx, actorID); err != nil {
		return nil, err
	}
	if actorID == userID && !active {
		return nil, fmt.Errorf("%w: administrators cannot deactivate themselves", apperrors.ErrValidation)
	}

	user, err := s.userRepo.SetUserActive(ctx, userID, active)
	if err != nil {
		logger.Error("Failed to toggle user", slog.String("error", err.Error()), slog.String("target_user_id", userID))
		return nil, err
	}

	logger.Info("User active flag changed", slog.String("target_user_id", userID), slog.Bool("active", active))
	return user, nil
}
