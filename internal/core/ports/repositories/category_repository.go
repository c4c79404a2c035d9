package repositories

import (
	"context"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *domain.Category) error
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, kind domain.CategoryKind, includeInactive bool) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) error
	SetCategoryActive(ctx context.Context, categoryID string, active bool) (*domain.Category, error)
}
