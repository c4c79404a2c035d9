package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus mirrors the workflow state column.
type PurchaseStatus string

const (
	PurchasePending  PurchaseStatus = "pending"
	PurchaseApproved PurchaseStatus = "approved"
	PurchaseRejected PurchaseStatus = "rejected"
)

// Purchase is the purchases table row.
type Purchase struct {
	PurchaseID   string          `db:"purchase_id"`
	Description  string          `db:"description"`
	Amount       decimal.Decimal `db:"amount"`
	CategoryID   string          `db:"category_id"`
	AccountID    *string         `db:"account_id"`
	PurchaseDate time.Time       `db:"purchase_date"`
	ReceiptURL   *string         `db:"receipt_url"`
	Notes        string          `db:"notes"`
	Status       PurchaseStatus  `db:"status"`
	SubmittedBy  string          `db:"submitted_by"`
	ReviewedBy   *string         `db:"reviewed_by"`
	ReviewedAt   *time.Time      `db:"reviewed_at"`
	RejectReason *string         `db:"reject_reason"`
	Timestamps
}
