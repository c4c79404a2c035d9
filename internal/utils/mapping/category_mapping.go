package mapping

import (
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	"github.com/tesorapp/tesoreria_backend/internal/models"
)

// ToModelCategory converts a domain category to its DB row shape.
func ToModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:  d.CategoryID,
		Kind:        models.CategoryKind(d.Kind),
		Name:        d.Name,
		Description: d.Description,
		Icon:        d.Icon,
		Color:       d.Color,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainCategory converts a DB row to the domain category.
func ToDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:  m.CategoryID,
		Kind:        domain.CategoryKind(m.Kind),
		Name:        m.Name,
		Description: m.Description,
		Icon:        m.Icon,
		Color:       m.Color,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
	}
}
