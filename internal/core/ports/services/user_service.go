package services

import (
	"context"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
)

// UserSvcFacade defines user administration operations.
type UserSvcFacade interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, actorID string) ([]domain.User, error)
	UpdateUserRole(ctx context.Context, actorID, userID string, req dto.UpdateUserRoleRequest) (*domain.User, error)
	SetUserActive(ctx context.Context, actorID, userID string, active bool) (*domain.User, error)
}
