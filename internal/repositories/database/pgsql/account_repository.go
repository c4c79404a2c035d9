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

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, name, account_type, account_number, bank_name, balance, color, is_active, created_at, updated_at`

func scanAccountRow(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID, &m.Name, &m.Type, &m.AccountNumber, &m.BankName,
		&m.Balance, &m.Color, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// CreateAccount inserts a new account row.
func (r *PgxAccountRepository) CreateAccount(ctx context.Context, account *domain.Account) error {
	m := mapping.ToModelAccount(*account)

	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.Name, m.Type, m.AccountNumber, m.BankName,
		m.Balance, m.Color, m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert account %s: %w", m.AccountID, translateConstraintError(err))
	}
	return nil
}

// GetAccountByID retrieves a single account.
func (r *PgxAccountRepository) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccountRow(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// ListAccounts retrieves accounts ordered by name. Inactive accounts are
// excluded unless requested.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts`
	if !includeInactive {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Account, error) {
		return scanAccountRow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}

	accounts := make([]domain.Account, len(ms))
	for i, m := range ms {
		accounts[i] = mapping.ToDomainAccount(m)
	}
	return accounts, nil
}

// UpdateAccount persists every mutable column of the account.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account *domain.Account) error {
	m := mapping.ToModelAccount(*account)

	query := `
		UPDATE accounts SET
			name = $2, account_type = $3, account_number = $4, bank_name = $5,
			balance = $6, color = $7, updated_at = $8
		WHERE account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.Name, m.Type, m.AccountNumber, m.BankName,
		m.Balance, m.Color, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, translateConstraintError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetAccountActive flips the active flag in place and returns the stored row,
// so concurrent toggles cannot resurrect a stale copy of the account.
func (r *PgxAccountRepository) SetAccountActive(ctx context.Context, accountID string, active bool) (*domain.Account, error) {
	query := `
		UPDATE accounts SET is_active = $2, updated_at = now()
		WHERE account_id = $1
		RETURNING ` + accountColumns + `;
	`
	m, err := scanAccountRow(r.Pool.QueryRow(ctx, query, accountID, active))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to toggle account %s: %w", accountID, err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}
