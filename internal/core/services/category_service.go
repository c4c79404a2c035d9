package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tesorapp/tesoreria_backend/internal/apperrors"
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/tesorapp/tesoreria_backend/internal/core/ports/repositories"
	portssvc "github.com/tesorapp/tesoreria_backend/internal/core/ports/services"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
	"github.com/tesorapp/tesoreria_backend/internal/middleware"
)

// CategoryService manages purchase and income categories.
type CategoryService struct {
	categoryRepo portsrepo.CategoryRepository
	userRepo     portsrepo.UserRepository
}

// NewCategoryService creates the category service.
func NewCategoryService(categoryRepo portsrepo.CategoryRepository, userRepo portsrepo.UserRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, userRepo: userRepo}
}

var _ portssvc.CategorySvcFacade = (*CategoryService)(nil)

func (s *CategoryService) treasurer(ctx context.Context, actorID string) error {
	actor, err := s.userRepo.GetUserByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.Role.CanRecordIncome() {
		return fmt.Errorf("%w: role %s cannot manage categories", apperrors.ErrForbidden, actor.Role)
	}
	return nil
}

// CreateCategory creates an active category of the given kind.
func (s *CategoryService) CreateCategory(ctx context.Context, actorID string, kind domain.CategoryKind, req dto.CreateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.treasurer(ctx, actorID); err != nil {
		return nil, err
	}

	category := domain.Category{
		CategoryID:  uuid.NewString(),
		Kind:        kind,
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
		Color:       req.Color,
		IsActive:    true,
		CreatedAt:   time.Now(),
	}

	if err := s.categoryRepo.CreateCategory(ctx, &category); err != nil {
		logger.Error("Failed to save category", slog.String("error", err.Error()), slog.String("category_id", category.CategoryID))
		return nil, err
	}

	logger.Info("Category created", slog.String("category_id", category.CategoryID), slog.String("kind", string(kind)))
	return &category, nil
}

// GetCategoryByID retrieves a single category.
func (s *CategoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.categoryRepo.GetCategoryByID(ctx, categoryID)
}

// ListCategories retrieves categories of one kind, active only by default.
func (s *CategoryService) ListCategories(ctx context.Context, kind domain.CategoryKind, includeInactive bool) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, kind, includeInactive)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	return categories, nil
}

// UpdateCategory patches a category. Omitted fields keep their previous
// values; the kind is immutable.
func (s *CategoryService) UpdateCategory(ctx context.Context, actorID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.treasurer(ctx, actorID); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Color != nil {
		category.Color = *req.Color
	}

	if err := s.categoryRepo.UpdateCategory(ctx, category); err != nil {
		logger.Error("Failed to update category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, err
	}

	logger.Info("Category updated", slog.String("category_id", categoryID))
	return category, nil
}

// SetCategoryActive toggles whether the category is offered for new records.
// Existing records keep pointing at deactivated categories.
func (s *CategoryService) SetCategoryActive(ctx context.Context, actorID, categoryID string, active bool) (*domain.Category, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.treasurer(ctx, actorID); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.SetCategoryActive(ctx, categoryID, active)
	if err != nil {
		logger.Error("Failed to toggle category", slog.String("error", err.Error()), slog.String("category_id", categoryID))
		return nil, err
	}

	logger.Info("Category active flag changed", slog.String("category_id", categoryID), slog.Bool("active", active))
	return category, nil
}
