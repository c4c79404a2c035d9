package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus indicates where a purchase sits in the approval workflow.
type PurchaseStatus string

const (
	PurchasePending  PurchaseStatus = "pending"
	PurchaseApproved PurchaseStatus = "approved"
	PurchaseRejected PurchaseStatus = "rejected"
)

// IsValid reports whether the status is one of the workflow states.
func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchasePending, PurchaseApproved, PurchaseRejected:
		return true
	}
	return false
}

// Purchase is a request to spend organizational funds. It is created in the
// pending state and only ever mutated through the workflow transitions:
// approve, reject, resubmit, and edit-while-rejected.
type Purchase struct {
	PurchaseID   string          `json:"purchaseID"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	CategoryID   string          `json:"categoryID"`
	AccountID    *string         `json:"accountID,omitempty"` // assigned at approval, may be nil while pending
	PurchaseDate time.Time       `json:"purchaseDate"`
	ReceiptURL   *string         `json:"receiptURL,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	Status       PurchaseStatus  `json:"status"`
	SubmittedBy  string          `json:"submittedBy"`
	ReviewedBy   *string         `json:"reviewedBy,omitempty"`
	ReviewedAt   *time.Time      `json:"reviewedAt,omitempty"`
	RejectReason *string         `json:"rejectReason,omitempty"`
	Timestamps

	// Joined rows, populated by list/read queries.
	Category  *Category `json:"category,omitempty"`
	Account   *Account  `json:"account,omitempty"`
	Submitter *User     `json:"submitter,omitempty"`
	Reviewer  *User     `json:"reviewer,omitempty"`
}

// PurchasesByStatus returns the subset of purchases in the given state.
func PurchasesByStatus(purchases []Purchase, status PurchaseStatus) []Purchase {
	out := make([]Purchase, 0)
	for _, p := range purchases {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

// RejectedPurchasesFor returns the rejected purchases submitted by the given
// user, used to notify a submitter of work awaiting correction.
func RejectedPurchasesFor(purchases []Purchase, userID string) []Purchase {
	out := make([]Purchase, 0)
	for _, p := range purchases {
		if p.Status == PurchaseRejected && p.SubmittedBy == userID {
			out = append(out, p)
		}
	}
	return out
}

// ApprovedPurchaseTotal sums the amounts of all approved purchases.
func ApprovedPurchaseTotal(purchases []Purchase) decimal.Decimal {
	total := decimal.Zero
	for _, p := range purchases {
		if p.Status == PurchaseApproved {
			total = total.Add(p.Amount)
		}
	}
	return total
}
