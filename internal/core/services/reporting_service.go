package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/tesorapp/tesoreria_backend/internal/core/ports/repositories"
	portssvc "github.com/tesorapp/tesoreria_backend/internal/core/ports/services"
	"github.com/tesorapp/tesoreria_backend/internal/middleware"
)

// ReportingService assembles the dashboard summary from the aggregate
// queries and the account balances.
type ReportingService struct {
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepository
	purchaseRepo  portsrepo.PurchaseRepository
}

// NewReportingService creates the reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepository, purchaseRepo portsrepo.PurchaseRepository) *ReportingService {
	return &ReportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
		purchaseRepo:  purchaseRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*ReportingService)(nil)

// GetFinancialSummary computes the dashboard for the calendar month
// containing the given time.
func (s *ReportingService) GetFinancialSummary(ctx context.Context, month time.Time) (*domain.FinancialSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	summary := &domain.FinancialSummary{}

	accounts, err := s.accountRepo.ListAccounts(ctx, false)
	if err != nil {
		logger.Error("Failed to load accounts for summary", slog.String("error", err.Error()))
		return nil, err
	}
	summary.TotalBalance = domain.TotalBalance(accounts)
	summary.AccountBalances = make([]domain.AccountBalance, len(accounts))
	for i, a := range accounts {
		summary.AccountBalances[i] = domain.AccountBalance{
			Account: a.Name,
			Balance: a.Balance,
			Color:   a.Color,
		}
	}

	if summary.MonthIncome, err = s.reportingRepo.IncomeTotal(ctx, from, to); err != nil {
		return nil, err
	}
	if summary.MonthSpend, err = s.reportingRepo.ApprovedPurchaseTotal(ctx, from, to); err != nil {
		return nil, err
	}
	if summary.IncomeByCategory, err = s.reportingRepo.IncomeTotalsByCategory(ctx, from, to); err != nil {
		return nil, err
	}
	if summary.SpendByCategory, err = s.reportingRepo.PurchaseTotalsByCategory(ctx, from, to); err != nil {
		return nil, err
	}
	if summary.PendingPurchases, err = s.purchaseRepo.CountPurchasesByStatus(ctx, domain.PurchasePending); err != nil {
		return nil, err
	}

	return summary, nil
}
