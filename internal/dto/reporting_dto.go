package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// CategoryTotalResponse is one per-category aggregate row.
type CategoryTotalResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// AccountBalanceResponse is one per-account balance row.
type AccountBalanceResponse struct {
	Account string          `json:"account"`
	Balance decimal.Decimal `json:"balance"`
	Color   string          `json:"color"`
}

// FinancialSummaryResponse is the dashboard aggregate.
type FinancialSummaryResponse struct {
	TotalBalance     decimal.Decimal          `json:"totalBalance"`
	MonthIncome      decimal.Decimal          `json:"monthIncome"`
	MonthSpend       decimal.Decimal          `json:"monthSpend"`
	PendingPurchases int                      `json:"pendingPurchases"`
	IncomeByCategory []CategoryTotalResponse  `json:"incomeByCategory"`
	SpendByCategory  []CategoryTotalResponse  `json:"spendByCategory"`
	AccountBalances  []AccountBalanceResponse `json:"accountBalances"`
}

// ToFinancialSummaryResponse converts the domain summary to its response.
func ToFinancialSummaryResponse(s *domain.FinancialSummary) FinancialSummaryResponse {
	incomeByCat := make([]CategoryTotalResponse, len(s.IncomeByCategory))
	for i, ct := range s.IncomeByCategory {
		incomeByCat[i] = CategoryTotalResponse{Category: ct.Category, Total: ct.Total}
	}
	spendByCat := make([]CategoryTotalResponse, len(s.SpendByCategory))
	for i, ct := range s.SpendByCategory {
		spendByCat[i] = CategoryTotalResponse{Category: ct.Category, Total: ct.Total}
	}
	balances := make([]AccountBalanceResponse, len(s.AccountBalances))
	for i, ab := range s.AccountBalances {
		balances[i] = AccountBalanceResponse{Account: ab.Account, Balance: ab.Balance, Color: ab.Color}
	}
	return FinancialSummaryResponse{
		TotalBalance:     s.TotalBalance,
		MonthIncome:      s.MonthIncome,
		MonthSpend:       s.MonthSpend,
		PendingPurchases: s.PendingPurchases,
		IncomeByCategory: incomeByCat,
		SpendByCategory:  spendByCat,
		AccountBalances:  balances,
	}
}
