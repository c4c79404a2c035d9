package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tesorapp/tesoreria_backend/internal/apperrors"
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/tesorapp/tesoreria_backend/internal/core/ports/repositories"
	portssvc "github.com/tesorapp/tesoreria_backend/internal/core/ports/services"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
	"github.com/tesorapp/tesoreria_backend/internal/middleware"
)

// AccountService manages the organization's bank, cash and digital accounts.
// Only roles that handle money directly may change them.
type AccountService struct {
	accountRepo portsrepo.AccountRepository
	userRepo    portsrepo.UserRepository
}

// NewAccountService creates the account service.
func NewAccountService(accountRepo portsrepo.AccountRepository, userRepo portsrepo.UserRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo, userRepo: userRepo}
}

var _ portssvc.AccountSvcFacade = (*AccountService)(nil)

func (s *AccountService) treasurer(ctx context.Context, actorID string) error {
	actor, err := s.userRepo.GetUserByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.Role.CanRecordIncome() {
		return fmt.Errorf("%w: role %s cannot manage accounts", apperrors.ErrForbidden, actor.Role)
	}
	return nil
}

// CreateAccount creates an active account.
func (s *AccountService) CreateAccount(ctx context.Context, actorID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.treasurer(ctx, actorID); err != nil {
		return nil, err
	}
	if req.Balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	account := domain.Account{
		AccountID:     uuid.NewString(),
		Name:          req.Name,
		Type:          domain.AccountType(req.Type),
		AccountNumber: req.AccountNumber,
		BankName:      req.BankName,
		Balance:       req.Balance,
		Color:         req.Color,
		IsActive:      true,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.accountRepo.CreateAccount(ctx, &account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("account_id", account.AccountID))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID))
	return &account, nil
}

// GetAccountByID retrieves a single account.
func (s *AccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.GetAccountByID(ctx, accountID)
}

// ListAccounts retrieves accounts, active only by default.
func (s *AccountService) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, includeInactive)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// UpdateAccount patches an account. Omitted fields keep their previous
// values.
func (s *AccountService) UpdateAccount(ctx context.Context, actorID, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.treasurer(ctx, actorID); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Type != nil {
		account.Type = domain.AccountType(*req.Type)
	}
	if req.AccountNumber != nil {
		account.AccountNumber = *req.AccountNumber
	}
	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	if req.Balance != nil {
		if req.Balance.IsNegative() {
			return nil, fmt.Errorf("%w: balance cannot be negative", apperrors.ErrValidation)
		}
		account.Balance = *req.Balance
	}
	if req.Color != nil {
		account.Color = *req.Color
	}
	account.UpdatedAt = time.Now()

	if err := s.accountRepo.UpdateAccount(ctx, account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// SetAccountActive toggles whether the account is usable. The repository
// flips the flag in place so a concurrent edit cannot be overwritten with a
// stale copy.
func (s *AccountService) SetAccountActive(ctx context.Context, actorID, accountID string, active bool) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.treasurer(ctx, actorID); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.SetAccountActive(ctx, accountID, active)
	if err != nil {
		logger.Error("Failed to toggle account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Account active flag changed", slog.String("account_id", accountID), slog.Bool("active", active))
	return account, nil
}
