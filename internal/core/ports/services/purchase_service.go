package services

import (
	"context"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
)

// PurchaseSvcFacade defines the purchase workflow operations exposed to the
// HTTP layer.
type PurchaseSvcFacade interface {
	SubmitPurchase(ctx context.Context, actorID string, req dto.CreatePurchaseRequest) (*domain.Purchase, error)
	GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error)
	ListPurchases(ctx context.Context, actorID string, params dto.ListPurchasesParams) ([]domain.Purchase, error)
	ApprovePurchase(ctx context.Context, actorID, purchaseID string, req dto.ApprovePurchaseRequest) (*domain.Purchase, error)
	RejectPurchase(ctx context.Context, actorID, purchaseID string, req dto.RejectPurchaseRequest) (*domain.Purchase, error)
	EditRejectedPurchase(ctx context.Context, actorID, purchaseID string, req dto.UpdateRejectedPurchaseRequest) (*domain.Purchase, error)
	ResubmitPurchase(ctx context.Context, actorID, purchaseID string, req dto.UpdateRejectedPurchaseRequest) (*domain.Purchase, error)
	DeletePurchase(ctx context.Context, actorID, purchaseID string) error
}
