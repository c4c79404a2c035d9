package models

import "github.com/shopspring/decimal"

// AccountType mirrors the account type column.
type AccountType string

const (
	AccountBank    AccountType = "bank"
	AccountCash    AccountType = "cash"
	AccountDigital AccountType = "digital"
)

// Account is the accounts table row.
type Account struct {
	AccountID     string          `db:"account_id"`
	Name          string          `db:"name"`
	Type          AccountType     `db:"account_type"`
	AccountNumber string          `db:"account_number"`
	BankName      string          `db:"bank_name"`
	Balance       decimal.Decimal `db:"balance"`
	Color         string          `db:"color"`
	IsActive      bool            `db:"is_active"`
	Timestamps
}
