package services

import (
	"context"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
)

// AccountSvcFacade defines the account operations exposed to the HTTP layer.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, actorID string, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, actorID, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	SetAccountActive(ctx context.Context, actorID, accountID string, active bool) (*domain.Account, error)
}
