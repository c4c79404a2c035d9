package repositories

import (
	"context"
	"time"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// IncomeListFilter narrows the income listing. From/To are inclusive bounds
// on the deposit date.
type IncomeListFilter struct {
	CategoryID string
	AccountID  string
	From       *time.Time
	To         *time.Time
}

// IncomeRepository defines persistence operations for income records.
type IncomeRepository interface {
	CreateIncome(ctx context.Context, income *domain.Income) error
	GetIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error)
	ListIncomes(ctx context.Context, filter IncomeListFilter) ([]domain.Income, error)
	UpdateIncome(ctx context.Context, income *domain.Income) error
	DeleteIncome(ctx context.Context, incomeID string) error
}
