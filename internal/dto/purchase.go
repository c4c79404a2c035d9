package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// ReceiptUpload carries an attachment file inline with a request. Data is
// base64 in the JSON payload.
type ReceiptUpload struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"data" binding:"required"`
}

// CreatePurchaseRequest defines the payload to submit a new purchase.
// The account is optional: the reviewer assigns it at approval time.
type CreatePurchaseRequest struct {
	Description  string          `json:"description" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CategoryID   string          `json:"categoryID" binding:"required"`
	AccountID    *string         `json:"accountID"`
	PurchaseDate time.Time       `json:"purchaseDate" binding:"required"`
	Notes        string          `json:"notes"`
	Receipt      *ReceiptUpload  `json:"receipt"`
}

// ApprovePurchaseRequest defines the payload to approve a pending purchase.
// The engine rejects the request when no account is supplied.
type ApprovePurchaseRequest struct {
	AccountID string `json:"accountID"`
}

// RejectPurchaseRequest defines the payload to reject a pending purchase.
// The engine rejects the request when no reason is supplied.
type RejectPurchaseRequest struct {
	Reason string `json:"reason"`
}

// UpdateRejectedPurchaseRequest is the partial patch a submitter may apply to
// their own rejected purchase. Nil fields keep their previous value.
type UpdateRejectedPurchaseRequest struct {
	Description  *string          `json:"description"`
	Amount       *decimal.Decimal `json:"amount"`
	CategoryID   *string          `json:"categoryID"`
	PurchaseDate *time.Time       `json:"purchaseDate"`
	Notes        *string          `json:"notes"`
	Receipt      *ReceiptUpload   `json:"receipt"`
}

// ListPurchasesParams are the supported purchase list filters. From/To bound
// the purchase date inclusively.
type ListPurchasesParams struct {
	Status     string     `form:"status"`
	CategoryID string     `form:"categoryID"`
	AccountID  string     `form:"accountID"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	OnlyMine   bool       `form:"onlyMine"`
}

// PurchaseResponse defines the data returned for a purchase.
type PurchaseResponse struct {
	PurchaseID   string          `json:"purchaseID"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	CategoryID   string          `json:"categoryID"`
	AccountID    *string         `json:"accountID,omitempty"`
	PurchaseDate time.Time       `json:"purchaseDate"`
	ReceiptURL   *string         `json:"receiptURL,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Status       string          `json:"status"`
	SubmittedBy  string          `json:"submittedBy"`
	ReviewedBy   *string         `json:"reviewedBy,omitempty"`
	ReviewedAt   *time.Time      `json:"reviewedAt,omitempty"`
	RejectReason *string         `json:"rejectReason,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`

	Category  *CategoryResponse `json:"category,omitempty"`
	Account   *AccountResponse  `json:"account,omitempty"`
	Submitter *UserResponse     `json:"submitter,omitempty"`
	Reviewer  *UserResponse     `json:"reviewer,omitempty"`
}

// ListPurchasesResponse wraps the purchase list together with the derived
// aggregates over it.
type ListPurchasesResponse struct {
	Purchases       []PurchaseResponse `json:"purchases"`
	PendingCount    int                `json:"pendingCount"`
	ApprovedTotal   decimal.Decimal    `json:"approvedTotal"`
	MyRejectedCount int                `json:"myRejectedCount"`
}

// ToPurchaseResponse converts a domain.Purchase to PurchaseResponse.
func ToPurchaseResponse(p *domain.Purchase) PurchaseResponse {
	resp := PurchaseResponse{
		PurchaseID:   p.PurchaseID,
		Description:  p.Description,
		Amount:       p.Amount,
		CategoryID:   p.CategoryID,
		AccountID:    p.AccountID,
		PurchaseDate: p.PurchaseDate,
		ReceiptURL:   p.ReceiptURL,
		Notes:        p.Notes,
		Status:       string(p.Status),
		SubmittedBy:  p.SubmittedBy,
		ReviewedBy:   p.ReviewedBy,
		ReviewedAt:   p.ReviewedAt,
		RejectReason: p.RejectReason,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Category != nil {
		cat := ToCategoryResponse(p.Category)
		resp.Category = &cat
	}
	if p.Account != nil {
		acc := ToAccountResponse(p.Account)
		resp.Account = &acc
	}
	if p.Submitter != nil {
		sub := ToUserResponse(p.Submitter)
		resp.Submitter = &sub
	}
	if p.Reviewer != nil {
		rev := ToUserResponse(p.Reviewer)
		resp.Reviewer = &rev
	}
	return resp
}

// ToPurchaseResponses converts a slice of domain purchases.
func ToPurchaseResponses(purchases []domain.Purchase) []PurchaseResponse {
	out := make([]PurchaseResponse, len(purchases))
	for i := range purchases {
		out[i] = ToPurchaseResponse(&purchases[i])
	}
	return out
}
