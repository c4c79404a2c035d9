package repositories

import (
	"context"
	"time"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUserRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error)
	SetUserActive(ctx context.Context, userID string, active bool) (*domain.User, error)
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash *string, expiresAt *time.Time) error
}
