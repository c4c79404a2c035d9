package services

import (
	"context"
	"errors"
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
	"github.com/tesorapp/tesoreria_backend/internal/platform/storage"
	"github.com/tesorapp/tesoreria_backend/internal/viewstate"
)

// IncomeService implements the deposit ledger. Recording income is restricted
// to roles that handle money directly.
type IncomeService struct {
	incomeRepo   portsrepo.IncomeRepository
	userRepo     portsrepo.UserRepository
	categoryRepo portsrepo.CategoryRepository
	accountRepo  portsrepo.AccountRepository

	blobStore      storage.BlobStore
	receiptsBucket string

	cache *viewstate.Collection[domain.Income]
}

// NewIncomeService creates the income ledger service.
func NewIncomeService(
	repos portsrepo.RepositoryProvider,
	blobStore storage.BlobStore,
	receiptsBucket string,
	cache *viewstate.Collection[domain.Income],
) *IncomeService {
	return &IncomeService{
		incomeRepo:     repos.IncomeRepo,
		userRepo:       repos.UserRepo,
		categoryRepo:   repos.CategoryRepo,
		accountRepo:    repos.AccountRepo,
		blobStore:      blobStore,
		receiptsBucket: receiptsBucket,
		cache:          cache,
	}
}

var _ portssvc.IncomeSvcFacade = (*IncomeService)(nil)

// recorder loads the actor and checks the income permission.
func (s *IncomeService) recorder(ctx context.Context, actorID string) (*domain.User, error) {
	actor, err := s.userRepo.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanRecordIncome() {
		return nil, fmt.Errorf("%w: role %s cannot record income", apperrors.ErrForbidden, actor.Role)
	}
	return actor, nil
}

func (s *IncomeService) uploadReceipt(ctx context.Context, incomeID string, receipt *dto.ReceiptUpload) (*string, error) {
	if receipt == nil {
		return nil, nil
	}
	logger := middleware.GetLoggerFromCtx(ctx)
	if s.blobStore == nil {
		logger.Warn("No blob store configured, saving income without attachment",
			slog.String("income_id", incomeID))
		return nil, nil
	}

	path := fmt.Sprintf("%s/%s", incomeID, receipt.FileName)
	err := s.blobStore.Upload(ctx, s.receiptsBucket, path, receipt.Data, receipt.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrBucketNotFound) {
			logger.Warn("Receipt bucket unavailable, saving income without attachment",
				slog.String("income_id", incomeID), slog.String("error", err.Error()))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to upload receipt: %w", err)
	}

	url := s.blobStore.PublicURL(s.receiptsBucket, path)
	return &url, nil
}

func (s *IncomeService) validateRefs(ctx context.Context, categoryID, accountID string) error {
	if categoryID != "" {
		category, err := s.categoryRepo.GetCategoryByID(ctx, categoryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: unknown category", apperrors.ErrValidation)
			}
			return err
		}
		if category.Kind != domain.CategoryIncome {
			return fmt.Errorf("%w: category %s is not an income category", apperrors.ErrValidation, category.CategoryID)
		}
	}
	if accountID != "" {
		if _, err := s.accountRepo.GetAccountByID(ctx, accountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: unknown account", apperrors.ErrValidation)
			}
			return err
		}
	}
	return nil
}

// RecordIncome creates a new deposit record.
func (s *IncomeService) RecordIncome(ctx context.Context, actorID string, req dto.CreateIncomeRequest) (*domain.Income, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.recorder(ctx, actorID); err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if err := s.validateRefs(ctx, req.CategoryID, req.AccountID); err != nil {
		return nil, err
	}

	now := time.Now()
	income := domain.Income{
		IncomeID:    uuid.NewString(),
		Description: req.Description,
		Amount:      req.Amount,
		CategoryID:  req.CategoryID,
		AccountID:   req.AccountID,
		DepositDate: req.DepositDate,
		Notes:       req.Notes,
		SubmittedBy: actorID,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	receiptURL, err := s.uploadReceipt(ctx, income.IncomeID, req.Receipt)
	if err != nil {
		return nil, err
	}
	income.ReceiptURL = receiptURL

	if err := s.incomeRepo.CreateIncome(ctx, &income); err != nil {
		logger.Error("Failed to save income", slog.String("error", err.Error()), slog.String("income_id", income.IncomeID))
		return nil, err
	}

	stored, err := s.incomeRepo.GetIncomeByID(ctx, income.IncomeID)
	if err != nil {
		return nil, err
	}

	s.cache.Prepend(*stored)
	logger.Info("Income recorded", slog.String("income_id", income.IncomeID))
	return stored, nil
}

// GetIncomeByID retrieves one income record, preferring the cache.
func (s *IncomeService) GetIncomeByID(ctx context.Context, incomeID string) (*domain.Income, error) {
	if cached, ok := s.cache.Get(incomeID); ok {
		return &cached, nil
	}
	return s.incomeRepo.GetIncomeByID(ctx, incomeID)
}

// ListIncomes loads deposits ordered by deposit date, newest first, and
// refreshes the cache when the listing is unfiltered.
func (s *IncomeService) ListIncomes(ctx context.Context, params dto.ListIncomesParams) ([]domain.Income, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.IncomeListFilter{
		CategoryID: params.CategoryID,
		AccountID:  params.AccountID,
		From:       params.From,
		To:         params.To,
	}

	incomes, err := s.incomeRepo.ListIncomes(ctx, filter)
	if err != nil {
		logger.Error("Failed to list incomes", slog.String("error", err.Error()))
		return nil, err
	}
	if incomes == nil {
		incomes = []domain.Income{}
	}

	if (filter == portsrepo.IncomeListFilter{}) {
		s.cache.Replace(incomes)
	}
	return incomes, nil
}

// UpdateIncome patches an income record. Omitted fields keep their previous
// values.
func (s *IncomeService) UpdateIncome(ctx context.Context, actorID, incomeID string, req dto.UpdateIncomeRequest) (*domain.Income, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.recorder(ctx, actorID); err != nil {
		return nil, err
	}

	income, err := s.incomeRepo.GetIncomeByID(ctx, incomeID)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		income.Description = *req.Description
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		income.Amount = *req.Amount
	}
	categoryID, accountID := "", ""
	if req.CategoryID != nil {
		categoryID = *req.CategoryID
	}
	if req.AccountID != nil {
		accountID = *req.AccountID
	}
	if err := s.validateRefs(ctx, categoryID, accountID); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		income.CategoryID = *req.CategoryID
	}
	if req.AccountID != nil {
		income.AccountID = *req.AccountID
	}
	if req.DepositDate != nil {
		income.DepositDate = *req.DepositDate
	}
	if req.Notes != nil {
		income.Notes = *req.Notes
	}
	if req.Receipt != nil {
		receiptURL, err := s.uploadReceipt(ctx, income.IncomeID, req.Receipt)
		if err != nil {
			return nil, err
		}
		if receiptURL != nil {
			income.ReceiptURL = receiptURL
		}
	}
	income.UpdatedAt = time.Now()

	if err := s.incomeRepo.UpdateIncome(ctx, income); err != nil {
		logger.Error("Failed to update income", slog.String("error", err.Error()), slog.String("income_id", incomeID))
		return nil, err
	}

	stored, err := s.incomeRepo.GetIncomeByID(ctx, incomeID)
	if err != nil {
		return nil, err
	}

	s.cache.Upsert(*stored)
	logger.Info("Income updated", slog.String("income_id", incomeID))
	return stored, nil
}

// DeleteIncome removes a deposit record.
func (s *IncomeService) DeleteIncome(ctx context.Context, actorID, incomeID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.recorder(ctx, actorID); err != nil {
		return err
	}

	if err := s.incomeRepo.DeleteIncome(ctx, incomeID); err != nil {
		logger.Error("Failed to delete income", slog.String("error", err.Error()), slog.String("income_id", incomeID))
		return err
	}

	s.cache.Remove(incomeID)
	logger.Info("Income deleted", slog.String("income_id", incomeID))
	return nil
}
