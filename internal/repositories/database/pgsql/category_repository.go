package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tesorapp/tesoreria_backend/internal/apperrors"
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/tesorapp/tesoreria_backend/internal/core/ports/repositories"
	"github.com/tesorapp/tesoreria_backend/internal/models"
	"github.com/tesorapp/tesoreria_backend/internal/utils/mapping"
)

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepository {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, kind, name, description, icon, color, is_active, created_at`

func scanCategoryRow(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID, &m.Kind, &m.Name, &m.Description,
		&m.Icon, &m.Color, &m.IsActive, &m.CreatedAt,
	)
	return m, err
}

// CreateCategory inserts a new category row.
func (r *PgxCategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	m := mapping.ToModelCategory(*category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID, m.Kind, m.Name, m.Description,
		m.Icon, m.Color, m.IsActive, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert category %s: %w", m.CategoryID, translateConstraintError(err))
	}
	return nil
}

// GetCategoryByID retrieves a single category.
func (r *PgxCategoryRepository) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`

	m, err := scanCategoryRow(r.Pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category %s: %w", categoryID, err)
	}
	category := mapping.ToDomainCategory(m)
	return &category, nil
}

// ListCategories retrieves categories of one kind ordered by name.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, kind domain.CategoryKind, includeInactive bool) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE kind = $1`
	if !includeInactive {
		query += ` AND is_active`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query, string(kind))
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Category, error) {
		return scanCategoryRow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}

	categories := make([]domain.Category, len(ms))
	for i, m := range ms {
		categories[i] = mapping.ToDomainCategory(m)
	}
	return categories, nil
}

// UpdateCategory persists the editable columns of the category.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category *domain.Category) error {
	m := mapping.ToModelCategory(*category)

	query := `
		UPDATE categories SET name = $2, description = $3, icon = $4, color = $5
		WHERE category_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.CategoryID, m.Name, m.Description, m.Icon, m.Color)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", m.CategoryID, translateConstraintError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetCategoryActive flips the active flag in place and returns the stored
// row.
func (r *PgxCategoryRepository) SetCategoryActive(ctx context.Context, categoryID string, active bool) (*domain.Category, error) {
	query := `
		UPDATE categories SET is_active = $2
		WHERE category_id = $1
		RETURNING ` + categoryColumns + `;
	`
	m, err := scanCategoryRow(r.Pool.QueryRow(ctx, query, categoryID, active))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to toggle category %s: %w", categoryID, err)
	}
	category := mapping.ToDomainCategory(m)
	return &category, nil
}
