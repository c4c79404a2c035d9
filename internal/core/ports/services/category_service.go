package services

import (
	"context"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
)

// CategorySvcFacade defines the category operations exposed to the HTTP
// layer.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, actorID string, kind domain.CategoryKind, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, kind domain.CategoryKind, includeInactive bool) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, actorID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	SetCategoryActive(ctx context.Context, actorID, categoryID string, active bool) (*domain.Category, error)
}
