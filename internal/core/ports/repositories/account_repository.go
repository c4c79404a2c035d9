package repositories

import (
	"context"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	CreateAccount(ctx context.Context, account *domain.Account) error
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account *domain.Account) error
	SetAccountActive(ctx context.Context, accountID string, active bool) (*domain.Account, error)
}
