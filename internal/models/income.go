package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income is the incomes table row.
type Income struct {
	IncomeID    string          `db:"income_id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	CategoryID  string          `db:"category_id"`
	AccountID   string          `db:"account_id"`
	DepositDate time.Time       `db:"deposit_date"`
	ReceiptURL  *string         `db:"receipt_url"`
	Notes       string          `db:"notes"`
	SubmittedBy string          `db:"submitted_by"`
	Timestamps
}
