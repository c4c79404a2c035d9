package mapping

import (
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	"github.com/tesorapp/tesoreria_backend/internal/models"
)

// ToModelPurchase converts a domain purchase to its DB row shape.
func ToModelPurchase(d domain.Purchase) models.Purchase {
	return models.Purchase{
		PurchaseID:   d.PurchaseID,
		Description:  d.Description,
		Amount:       d.Amount,
		CategoryID:   d.CategoryID,
		AccountID:    d.AccountID,
		PurchaseDate: d.PurchaseDate,
		ReceiptURL:   d.ReceiptURL,
		Notes:        d.Notes,
		Status:       models.PurchaseStatus(d.Status),
		SubmittedBy:  d.SubmittedBy,
		ReviewedBy:   d.ReviewedBy,
		ReviewedAt:   d.ReviewedAt,
		RejectReason: d.RejectReason,
		Timestamps: models.Timestamps{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainPurchase converts a DB row to the domain purchase.
func ToDomainPurchase(m models.Purchase) domain.Purchase {
	return domain.Purchase{
		PurchaseID:   m.PurchaseID,
		Description:  m.Description,
		Amount:       m.Amount,
		CategoryID:   m.CategoryID,
		AccountID:    m.AccountID,
		PurchaseDate: m.PurchaseDate,
		ReceiptURL:   m.ReceiptURL,
		Notes:        m.Notes,
		Status:       domain.PurchaseStatus(m.Status),
		SubmittedBy:  m.SubmittedBy,
		ReviewedBy:   m.ReviewedBy,
		ReviewedAt:   m.ReviewedAt,
		RejectReason: m.RejectReason,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
