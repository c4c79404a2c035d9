package repositories

import (
	"context"
	"time"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// PurchaseListFilter narrows the purchase listing. Zero values mean "no
// filter"; From/To are inclusive bounds on the purchase date.
type PurchaseListFilter struct {
	Status      domain.PurchaseStatus
	CategoryID  string
	AccountID   string
	SubmittedBy string
	From        *time.Time
	To          *time.Time
}

// PurchaseRepository defines persistence operations for purchases.
type PurchaseRepository interface {
	CreatePurchase(ctx context.Context, purchase *domain.Purchase) error
	GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)
	ListPurchases(ctx context.Context, filter PurchaseListFilter) ([]domain.Purchase, error)
	UpdatePurchase(ctx context.Context, purchase *domain.Purchase) error
	DeletePurchase(ctx context.Context, purchaseID string) error
	CountPurchasesByStatus(ctx context.Context, status domain.PurchaseStatus) (int, error)
}
