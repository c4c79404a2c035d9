package services

import (
	"context"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
)

// IncomeSvcFacade defines the income ledger operations exposed to the HTTP
// layer.
type IncomeSvcFacade interface {
	RecordIncome(ctx context.Context, actorID string, req dto.CreateIncomeRequest) (*domain.Income, error)
	GetIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error)
	ListIncomes(ctx context.Context, params dto.ListIncomesParams) ([]domain.Income, error)
	UpdateIncome(ctx context.Context, actorID, incomeID string, req dto.UpdateIncomeRequest) (*domain.Income, error)
	DeleteIncome(ctx context.Context, actorID, incomeID string) error
}
