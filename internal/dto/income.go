package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// CreateIncomeRequest defines the payload to record a deposit. The account is
// mandatory at creation.
type CreateIncomeRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	CategoryID  string          `json:"categoryID" binding:"required"`
	AccountID   string          `json:"accountID" binding:"required"`
	DepositDate time.Time       `json:"depositDate" binding:"required"`
	Notes       string          `json:"notes"`
	Receipt     *ReceiptUpload  `json:"receipt"`
}

// UpdateIncomeRequest is the partial patch for an income record. Nil fields
// keep their previous value.
type UpdateIncomeRequest struct {
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	CategoryID  *string          `json:"categoryID"`
	AccountID   *string          `json:"accountID"`
	DepositDate *time.Time       `json:"depositDate"`
	Notes       *string          `json:"notes"`
	Receipt     *ReceiptUpload   `json:"receipt"`
}

// ListIncomesParams are the supported income list filters. From/To bound the
// deposit date inclusively.
type ListIncomesParams struct {
	CategoryID string     `form:"categoryID"`
	AccountID  string     `form:"accountID"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
}

// IncomeResponse defines the data returned for an income record.
type IncomeResponse struct {
	IncomeID    string          `json:"incomeID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  string          `json:"categoryID"`
	AccountID   string          `json:"accountID"`
	DepositDate time.Time       `json:"depositDate"`
	ReceiptURL  *string         `json:"receiptURL,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	SubmittedBy string          `json:"submittedBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`

	Category  *CategoryResponse `json:"category,omitempty"`
	Account   *AccountResponse  `json:"account,omitempty"`
	Submitter *UserResponse     `json:"submitter,omitempty"`
}

// ListIncomesResponse wraps the income list with its derived total.
type ListIncomesResponse struct {
	Incomes []IncomeResponse `json:"incomes"`
	Total   decimal.Decimal  `json:"total"`
}

// ToIncomeResponse converts a domain.Income to IncomeResponse.
func ToIncomeResponse(in *domain.Income) IncomeResponse {
	resp := IncomeResponse{
		IncomeID:    in.IncomeID,
		Description: in.Description,
		Amount:      in.Amount,
		CategoryID:  in.CategoryID,
		AccountID:   in.AccountID,
		DepositDate: in.DepositDate,
		ReceiptURL:  in.ReceiptURL,
		Notes:       in.Notes,
		SubmittedBy: in.SubmittedBy,
		CreatedAt:   in.CreatedAt,
		UpdatedAt:   in.UpdatedAt,
	}
	if in.Category != nil {
		cat := ToCategoryResponse(in.Category)
		resp.Category = &cat
	}
	if in.Account != nil {
		acc := ToAccountResponse(in.Account)
		resp.Account = &acc
	}
	if in.Submitter != nil {
		sub := ToUserResponse(in.Submitter)
		resp.Submitter = &sub
	}
	return resp
}

// ToIncomeResponses converts a slice of domain income records.
func ToIncomeResponses(incomes []domain.Income) []IncomeResponse {
	out := make([]IncomeResponse, len(incomes))
	for i := range incomes {
		out[i] = ToIncomeResponse(&incomes[i])
	}
	return out
}
