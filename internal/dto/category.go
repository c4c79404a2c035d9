package dto

import (
	"time"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// CreateCategoryRequest defines the payload to create a category; its kind
// comes from the route.
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// UpdateCategoryRequest is the partial patch for a category. Nil fields keep
// their previous value.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID  string    `json:"categoryID"`
	Kind        string    `json:"kind"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon"`
	Color       string    `json:"color"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ListCategoriesResponse wraps the category list.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse.
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:  c.CategoryID,
		Kind:        string(c.Kind),
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		Color:       c.Color,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

// ToCategoryResponses converts a slice of domain categories.
func ToCategoryResponses(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out
}
