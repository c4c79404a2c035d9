package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// CreateAccountRequest defines the payload to create an account.
type CreateAccountRequest struct {
	Name          string          `json:"name" binding:"required"`
	Type          string          `json:"type" binding:"required,oneof=bank cash digital"`
	AccountNumber string          `json:"accountNumber"`
	BankName      string          `json:"bankName"`
	Balance       decimal.Decimal `json:"balance"`
	Color         string          `json:"color"`
}

// UpdateAccountRequest is the partial patch for an account. Nil fields keep
// their previous value.
type UpdateAccountRequest struct {
	Name          *string          `json:"name"`
	Type          *string          `json:"type" binding:"omitempty,oneof=bank cash digital"`
	AccountNumber *string          `json:"accountNumber"`
	BankName      *string          `json:"bankName"`
	Balance       *decimal.Decimal `json:"balance"`
	Color         *string          `json:"color"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string          `json:"accountID"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	AccountNumber string          `json:"accountNumber,omitempty"`
	BankName      string          `json:"bankName,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	Color         string          `json:"color"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ListAccountsResponse wraps the account list with the total balance across
// active accounts.
type ListAccountsResponse struct {
	Accounts     []AccountResponse `json:"accounts"`
	TotalBalance decimal.Decimal   `json:"totalBalance"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     a.AccountID,
		Name:          a.Name,
		Type:          string(a.Type),
		AccountNumber: a.AccountNumber,
		BankName:      a.BankName,
		Balance:       a.Balance,
		Color:         a.Color,
		IsActive:      a.IsActive,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}
