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

type PgxIncomeRepository struct {
	BaseRepository
}

// newPgxIncomeRepository creates a new repository for income data.
func newPgxIncomeRepository(pool *pgxpool.Pool) portsrepo.IncomeRepository {
	return &PgxIncomeRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.IncomeRepository = (*PgxIncomeRepository)(nil)

const incomeSelect = `
	SELECT i.income_id, i.description, i.amount, i.category_id, i.account_id,
	       i.deposit_date, i.receipt_url, i.notes, i.submitted_by, i.created_at, i.updated_at,
	       c.name, c.icon, c.color,
	       a.name, a.account_type, a.color,
	       su.email, su.first_name, su.last_name, su.role
	FROM incomes i
	JOIN categories c ON c.category_id = i.category_id
	JOIN accounts a ON a.account_id = i.account_id
	JOIN users su ON su.user_id = i.submitted_by
`

func scanIncomeRow(row pgx.Row) (domain.Income, error) {
	var m models.Income
	var catName, catIcon, catColor string
	var accName, accType, accColor string
	var subEmail, subFirst, subLast, subRole string

	err := row.Scan(
		&m.IncomeID, &m.Description, &m.Amount, &m.CategoryID, &m.AccountID,
		&m.DepositDate, &m.ReceiptURL, &m.Notes, &m.SubmittedBy, &m.CreatedAt, &m.UpdatedAt,
		&catName, &catIcon, &catColor,
		&accName, &accType, &accColor,
		&subEmail, &subFirst, &subLast, &subRole,
	)
	if err != nil {
		return domain.Income{}, err
	}

	in := mapping.ToDomainIncome(m)
	in.Category = &domain.Category{
		CategoryID: m.CategoryID,
		Kind:       domain.CategoryIncome,
		Name:       catName,
		Icon:       catIcon,
		Color:      catColor,
	}
	in.Account = &domain.Account{
		AccountID: m.AccountID,
		Name:      accName,
		Type:      domain.AccountType(accType),
		Color:     accColor,
	}
	in.Submitter = &domain.User{
		UserID:    m.SubmittedBy,
		Email:     subEmail,
		FirstName: subFirst,
		LastName:  subLast,
		Role:      domain.Role(subRole),
	}
	return in, nil
}

// CreateIncome inserts a new income row.
func (r *PgxIncomeRepository) CreateIncome(ctx context.Context, income *domain.Income) error {
	m := mapping.ToModelIncome(*income)

	query := `
		INSERT INTO incomes (income_id, description, amount, category_id, account_id,
			deposit_date, receipt_url, notes, submitted_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.IncomeID, m.Description, m.Amount, m.CategoryID, m.AccountID,
		m.DepositDate, m.ReceiptURL, m.Notes, m.SubmittedBy, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert income %s: %w", m.IncomeID, translateConstraintError(err))
	}
	return nil
}

// GetIncomeByID retrieves an income record with its joined display data.
func (r *PgxIncomeRepository) GetIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	query := incomeSelect + ` WHERE i.income_id = $1;`

	in, err := scanIncomeRow(r.Pool.QueryRow(ctx, query, incomeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find income %s: %w", incomeID, err)
	}
	return &in, nil
}

// ListIncomes retrieves income records ordered by deposit date, newest first.
func (r *PgxIncomeRepository) ListIncomes(ctx context.Context, filter portsrepo.IncomeListFilter) ([]domain.Income, error) {
	query := incomeSelect + ` WHERE 1=1`
	args := []any{}
	argN := 1

	if filter.CategoryID != "" {
		query += fmt.Sprintf(" AND i.category_id = $%d", argN)
		args = append(args, filter.CategoryID)
		argN++
	}
	if filter.AccountID != "" {
		query += fmt.Sprintf(" AND i.account_id = $%d", argN)
		args = append(args, filter.AccountID)
		argN++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND i.deposit_date >= $%d", argN)
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND i.deposit_date <= $%d", argN)
		args = append(args, *filter.To)
		argN++
	}
	query += " ORDER BY i.deposit_date DESC, i.created_at DESC;"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incomes: %w", err)
	}
	defer rows.Close()

	incomes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Income, error) {
		return scanIncomeRow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan incomes: %w", err)
	}
	return incomes, nil
}

// UpdateIncome persists every mutable column of the income record.
func (r *PgxIncomeRepository) UpdateIncome(ctx context.Context, income *domain.Income) error {
	m := mapping.ToModelIncome(*income)

	query := `
		UPDATE incomes SET
			description = $2, amount = $3, category_id = $4, account_id = $5,
			deposit_date = $6, receipt_url = $7, notes = $8, updated_at = $9
		WHERE income_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.IncomeID, m.Description, m.Amount, m.CategoryID, m.AccountID,
		m.DepositDate, m.ReceiptURL, m.Notes, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update income %s: %w", m.IncomeID, translateConstraintError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteIncome removes an income row.
func (r *PgxIncomeRepository) DeleteIncome(ctx context.Context, incomeID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM incomes WHERE income_id = $1;`, incomeID)
	if err != nil {
		return fmt.Errorf("failed to delete income %s: %w", incomeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
