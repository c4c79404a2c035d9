package domain

import "github.com/shopspring/decimal"

// AccountType classifies how funds are held.
type AccountType string

const (
	AccountBank    AccountType = "bank"
	AccountCash    AccountType = "cash"
	AccountDigital AccountType = "digital"
)

// IsValid reports whether the account type is known.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountBank, AccountCash, AccountDigital:
		return true
	}
	return false
}

// Account is a bank, cash or digital holding. The balance is a stored,
// externally maintained value; no ledger posting derives it.
type Account struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	Type          AccountType     `json:"type"`
	AccountNumber string          `json:"accountNumber,omitempty"`
	BankName      string          `json:"bankName,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	Color         string          `json:"color"`
	IsActive      bool            `json:"isActive"`
	Timestamps
}

// ActiveAccounts returns the subset of accounts still in use.
func ActiveAccounts(accounts []Account) []Account {
	out := make([]Account, 0)
	for _, a := range accounts {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out
}

// TotalBalance sums the balances of all active accounts.
func TotalBalance(accounts []Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		if a.IsActive {
			total = total.Add(a.Balance)
		}
	}
	return total
}
