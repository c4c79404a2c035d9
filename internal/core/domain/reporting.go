package domain

import "github.com/shopspring/decimal"

// CategoryTotal is an aggregate of amounts per category name.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// AccountBalance is the stored balance of one account, for dashboard display.
type AccountBalance struct {
	Account string          `json:"account"`
	Balance decimal.Decimal `json:"balance"`
	Color   string          `json:"color"`
}

// FinancialSummary is the dashboard aggregate, recomputed on demand from the
// underlying collections rather than stored.
type FinancialSummary struct {
	TotalBalance     decimal.Decimal  `json:"totalBalance"`
	MonthIncome      decimal.Decimal  `json:"monthIncome"`
	MonthSpend       decimal.Decimal  `json:"monthSpend"`
	PendingPurchases int              `json:"pendingPurchases"`
	IncomeByCategory []CategoryTotal  `json:"incomeByCategory"`
	SpendByCategory  []CategoryTotal  `json:"spendByCategory"`
	AccountBalances  []AccountBalance `json:"accountBalances"`
}
