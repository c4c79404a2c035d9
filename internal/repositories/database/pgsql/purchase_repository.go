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

type PgxPurchaseRepository struct {
	BaseRepository
}

// newPgxPurchaseRepository creates a new repository for purchase data.
func newPgxPurchaseRepository(pool *pgxpool.Pool) portsrepo.PurchaseRepository {
	return &PgxPurchaseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PurchaseRepository = (*PgxPurchaseRepository)(nil)

// purchaseSelect joins the display data the listing needs alongside the
// purchase row itself. Reviewer and account joins are nullable.
const purchaseSelect = `
	SELECT p.purchase_id, p.description, p.amount, p.category_id, p.account_id,
	       p.purchase_date, p.receipt_url, p.notes, p.status, p.submitted_by,
	       p.reviewed_by, p.reviewed_at, p.reject_reason, p.created_at, p.updated_at,
	       c.name, c.icon, c.color,
	       a.name, a.account_type, a.color,
	       su.email, su.first_name, su.last_name, su.role,
	       rv.email, rv.first_name, rv.last_name, rv.role
	FROM purchases p
	JOIN categories c ON c.category_id = p.category_id
	LEFT JOIN accounts a ON a.account_id = p.account_id
	JOIN users su ON su.user_id = p.submitted_by
	LEFT JOIN users rv ON rv.user_id = p.reviewed_by
`

func scanPurchaseRow(row pgx.Row) (domain.Purchase, error) {
	var m models.Purchase
	var catName, catIcon, catColor string
	var accName, accType, accColor *string
	var subEmail, subFirst, subLast, subRole string
	var revEmail, revFirst, revLast, revRole *string

	err := row.Scan(
		&m.PurchaseID, &m.Description, &m.Amount, &m.CategoryID, &m.AccountID,
		&m.PurchaseDate, &m.ReceiptURL, &m.Notes, &m.Status, &m.SubmittedBy,
		&m.ReviewedBy, &m.ReviewedAt, &m.RejectReason, &m.CreatedAt, &m.UpdatedAt,
		&catName, &catIcon, &catColor,
		&accName, &accType, &accColor,
		&subEmail, &subFirst, &subLast, &subRole,
		&revEmail, &revFirst, &revLast, &revRole,
	)
	if err != nil {
		return domain.Purchase{}, err
	}

	p := mapping.ToDomainPurchase(m)
	p.Category = &domain.Category{
		CategoryID: m.CategoryID,
		Kind:       domain.CategoryPurchase,
		Name:       catName,
		Icon:       catIcon,
		Color:      catColor,
	}
	if m.AccountID != nil && accName != nil {
		p.Account = &domain.Account{
			AccountID: *m.AccountID,
			Name:      *accName,
			Type:      domain.AccountType(*accType),
			Color:     *accColor,
		}
	}
	p.Submitter = &domain.User{
		UserID:    m.SubmittedBy,
		Email:     subEmail,
		FirstName: subFirst,
		LastName:  subLast,
		Role:      domain.Role(subRole),
	}
	if m.ReviewedBy != nil && revEmail != nil {
		p.Reviewer = &domain.User{
			UserID:    *m.ReviewedBy,
			Email:     *revEmail,
			FirstName: *revFirst,
			LastName:  *revLast,
			Role:      domain.Role(*revRole),
		}
	}
	return p, nil
}

// CreatePurchase inserts a new purchase row.
func (r *PgxPurchaseRepository) CreatePurchase(ctx context.Context, purchase *domain.Purchase) error {
	m := mapping.ToModelPurchase(*purchase)

	query := `
		INSERT INTO purchases (purchase_id, description, amount, category_id, account_id,
			purchase_date, receipt_url, notes, status, submitted_by,
			reviewed_by, reviewed_at, reject_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.PurchaseID, m.Description, m.Amount, m.CategoryID, m.AccountID,
		m.PurchaseDate, m.ReceiptURL, m.Notes, m.Status, m.SubmittedBy,
		m.ReviewedBy, m.ReviewedAt, m.RejectReason, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert purchase %s: %w", m.PurchaseID, translateConstraintError(err))
	}
	return nil
}

// GetPurchaseByID retrieves a purchase with its joined display data.
func (r *PgxPurchaseRepository) GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	query := purchaseSelect + ` WHERE p.purchase_id = $1;`

	p, err := scanPurchaseRow(r.Pool.QueryRow(ctx, query, purchaseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find purchase %s: %w", purchaseID, err)
	}
	return &p, nil
}

// ListPurchases retrieves purchases newest first, optionally filtered.
func (r *PgxPurchaseRepository) ListPurchases(ctx context.Context, filter portsrepo.PurchaseListFilter) ([]domain.Purchase, error) {
	query := purchaseSelect + ` WHERE 1=1`
	args := []any{}
	argN := 1

	addFilter := func(clause string, value any) {
		query += fmt.Sprintf(" AND %s = $%d", clause, argN)
		args = append(args, value)
		argN++
	}

	if filter.Status != "" {
		addFilter("p.status", string(filter.Status))
	}
	if filter.CategoryID != "" {
		addFilter("p.category_id", filter.CategoryID)
	}
	if filter.AccountID != "" {
		addFilter("p.account_id", filter.AccountID)
	}
	if filter.SubmittedBy != "" {
		addFilter("p.submitted_by", filter.SubmittedBy)
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND p.purchase_date >= $%d", argN)
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND p.purchase_date <= $%d", argN)
		args = append(args, *filter.To)
		argN++
	}
	query += " ORDER BY p.created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	purchases, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Purchase, error) {
		return scanPurchaseRow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan purchases: %w", err)
	}
	return purchases, nil
}

// UpdatePurchase persists every mutable column of the purchase.
func (r *PgxPurchaseRepository) UpdatePurchase(ctx context.Context, purchase *domain.Purchase) error {
	m := mapping.ToModelPurchase(*purchase)

	query := `
		UPDATE purchases SET
			description = $2, amount = $3, category_id = $4, account_id = $5,
			purchase_date = $6, receipt_url = $7, notes = $8, status = $9,
			reviewed_by = $10, reviewed_at = $11, reject_reason = $12, updated_at = $13
		WHERE purchase_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.PurchaseID, m.Description, m.Amount, m.CategoryID, m.AccountID,
		m.PurchaseDate, m.ReceiptURL, m.Notes, m.Status,
		m.ReviewedBy, m.ReviewedAt, m.RejectReason, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update purchase %s: %w", m.PurchaseID, translateConstraintError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeletePurchase removes a purchase row.
func (r *PgxPurchaseRepository) DeletePurchase(ctx context.Context, purchaseID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM purchases WHERE purchase_id = $1;`, purchaseID)
	if err != nil {
		return fmt.Errorf("failed to delete purchase %s: %w", purchaseID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountPurchasesByStatus counts purchases in the given workflow state.
func (r *PgxPurchaseRepository) CountPurchasesByStatus(ctx context.Context, status domain.PurchaseStatus) (int, error) {
	var count int
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM purchases WHERE status = $1;`, string(status)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count purchases by status %s: %w", status, err)
	}
	return count, nil
}
