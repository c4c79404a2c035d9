package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income is a deposit into one of the organization's accounts. Unlike a
// purchase it has no approval workflow: it is created, edited or deleted
// directly by users with ledger-write privilege.
type Income struct {
	IncomeID    string          `json:"incomeID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  string          `json:"categoryID"`
	AccountID   string          `json:"accountID"`
	DepositDate time.Time       `json:"depositDate"`
	ReceiptURL  *string         `json:"receiptURL,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	SubmittedBy string          `json:"submittedBy"`
	Timestamps

	Category  *Category `json:"category,omitempty"`
	Account   *Account  `json:"account,omitempty"`
	Submitter *User     `json:"submitter,omitempty"`
}

// IncomeTotal sums the amounts of all income records.
func IncomeTotal(incomes []Income) decimal.Decimal {
	total := decimal.Zero
	for _, in := range incomes {
		total = total.Add(in.Amount)
	}
	return total
}
