package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tesorapp/tesoreria_backend/internal/apperrors"
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/tesorapp/tesoreria_backend/internal/core/ports/repositories"
	portssvc "github.com/tesorapp/tesoreria_backend/internal/core/ports/services"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
	"github.com/tesorapp/tesoreria_backend/internal/middleware"
	"github.com/tesorapp/tesoreria_backend/internal/platform/notify"
	"github.com/tesorapp/tesoreria_backend/internal/platform/storage"
	"github.com/tesorapp/tesoreria_backend/internal/utils"
	"github.com/tesorapp/tesoreria_backend/internal/viewstate"
)

// PurchaseService implements the purchase approval workflow. Every write goes
// to the repository first; the view-state cache is only touched after the
// write succeeds.
type PurchaseService struct {
	purchaseRepo portsrepo.PurchaseRepository
	userRepo     portsrepo.UserRepository
	categoryRepo portsrepo.CategoryRepository
	accountRepo  portsrepo.AccountRepository
	settingsRepo portsrepo.SettingsRepository

	blobStore      storage.BlobStore
	receiptsBucket string
	notifier       notify.Notifier
	posthogClient  *utils.PosthogClientWrapper

	cache *viewstate.Collection[domain.Purchase]
}

// NewPurchaseService creates the purchase workflow service.
func NewPurchaseService(
	repos portsrepo.RepositoryProvider,
	blobStore storage.BlobStore,
	receiptsBucket string,
	notifier notify.Notifier,
	posthogClient *utils.PosthogClientWrapper,
	cache *viewstate.Collection[domain.Purchase],
) *PurchaseService {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &PurchaseService{
		purchaseRepo:   repos.PurchaseRepo,
		userRepo:       repos.UserRepo,
		categoryRepo:   repos.CategoryRepo,
		accountRepo:    repos.AccountRepo,
		settingsRepo:   repos.SettingsRepo,
		blobStore:      blobStore,
		receiptsBucket: receiptsBucket,
		notifier:       notifier,
		posthogClient:  posthogClient,
		cache:          cache,
	}
}

var _ portssvc.PurchaseSvcFacade = (*PurchaseService)(nil)

// uploadReceipt stores the attachment and returns its public URL. A missing
// bucket degrades to no attachment instead of failing the whole operation;
// any other upload failure aborts.
func (s *PurchaseService) uploadReceipt(ctx context.Context, purchaseID string, receipt *dto.ReceiptUpload) (*string, error) {
	if receipt == nil {
		return nil, nil
	}
	logger := middleware.GetLoggerFromCtx(ctx)
	if s.blobStore == nil {
		logger.Warn("No blob store configured, saving purchase without attachment",
			slog.String("purchase_id", purchaseID))
		return nil, nil
	}

	path := fmt.Sprintf("%s/%s", purchaseID, receipt.FileName)
	err := s.blobStore.Upload(ctx, s.receiptsBucket, path, receipt.Data, receipt.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrBucketNotFound) {
			logger.Warn("Receipt bucket unavailable, saving purchase without attachment",
				slog.String("purchase_id", purchaseID), slog.String("error", err.Error()))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to upload receipt: %w", err)
	}

	url := s.blobStore.PublicURL(s.receiptsBucket, path)
	return &url, nil
}

func (s *PurchaseService) track(actorID, event string, purchase *domain.Purchase) {
	if s.posthogClient == nil || !s.posthogClient.IsInitialized() {
		return
	}
	s.posthogClient.Enqueue(actorID, event, map[string]any{
		"purchase_id": purchase.PurchaseID,
		"status":      string(purchase.Status),
		"amount":      purchase.Amount.String(),
	})
}

// SubmitPurchase creates a new purchase in the pending state.
func (s *PurchaseService) SubmitPurchase(ctx context.Context, actorID string, req dto.CreatePurchaseRequest) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	category, err := s.categoryRepo.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown category", apperrors.ErrValidation)
		}
		return nil, err
	}
	if category.Kind != domain.CategoryPurchase {
		return nil, fmt.Errorf("%w: category %s is not a purchase category", apperrors.ErrValidation, category.CategoryID)
	}
	if req.AccountID != nil {
		if _, err := s.accountRepo.GetAccountByID(ctx, *req.AccountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown account", apperrors.ErrValidation)
			}
			return nil, err
		}
	}

	now := time.Now()
	purchase := domain.Purchase{
		PurchaseID:   uuid.NewString(),
		Description:  req.Description,
		Amount:       req.Amount,
		CategoryID:   req.CategoryID,
		AccountID:    req.AccountID,
		PurchaseDate: req.PurchaseDate,
		Notes:        req.Notes,
		Status:       domain.PurchasePending,
		SubmittedBy:  actorID,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	receiptURL, err := s.uploadReceipt(ctx, purchase.PurchaseID, req.Receipt)
	if err != nil {
		return nil, err
	}
	purchase.ReceiptURL = receiptURL

	if err := s.purchaseRepo.CreatePurchase(ctx, &purchase); err != nil {
		logger.Error("Failed to save purchase", slog.String("error", err.Error()), slog.String("purchase_id", purchase.PurchaseID))
		return nil, err
	}

	stored, err := s.purchaseRepo.GetPurchaseByID(ctx, purchase.PurchaseID)
	if err != nil {
		return nil, err
	}

	s.cache.Prepend(*stored)
	s.track(actorID, "purchase_submitted", stored)
	logger.Info("Purchase submitted", slog.String("purchase_id", purchase.PurchaseID))
	return stored, nil
}

// GetPurchaseByID retrieves one purchase, preferring the cache.
func (s *PurchaseService) GetPurchaseByID(ctx context.Context, purchaseID string) (*domain.Purchase, error) {
	if cached, ok := s.cache.Get(purchaseID); ok {
		return &cached, nil
	}
	return s.purchaseRepo.GetPurchaseByID(ctx, purchaseID)
}

// ListPurchases loads purchases newest first and refreshes the cache when the
// listing is unfiltered.
func (s *PurchaseService) ListPurchases(ctx context.Context, actorID string, params dto.ListPurchasesParams) ([]domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if params.Status != "" && !domain.PurchaseStatus(params.Status).IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, params.Status)
	}

	filter := portsrepo.PurchaseListFilter{
		Status:     domain.PurchaseStatus(params.Status),
		CategoryID: params.CategoryID,
		AccountID:  params.AccountID,
		From:       params.From,
		To:         params.To,
	}
	if params.OnlyMine {
		filter.SubmittedBy = actorID
	}

	purchases, err := s.purchaseRepo.ListPurchases(ctx, filter)
	if err != nil {
		logger.Error("Failed to list purchases", slog.String("error", err.Error()))
		return nil, err
	}
	if purchases == nil {
		purchases = []domain.Purchase{}
	}

	if (filter == portsrepo.PurchaseListFilter{}) {
		s.cache.Replace(purchases)
	}
	return purchases, nil
}

// reviewer loads the actor and checks the review permission.
func (s *PurchaseService) reviewer(ctx context.Context, actorID string) (*domain.User, error) {
	actor, err := s.userRepo.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanReviewPurchases() {
		return nil, fmt.Errorf("%w: role %s cannot review purchases", apperrors.ErrForbidden, actor.Role)
	}
	return actor, nil
}

// ApprovePurchase moves a pending purchase to approved. The reviewer must
// assign the account the money leaves from.
func (s *PurchaseService) ApprovePurchase(ctx context.Context, actorID, purchaseID string, req dto.ApprovePurchaseRequest) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.reviewer(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if req.AccountID == "" {
		return nil, fmt.Errorf("%w: an account is required to approve a purchase", apperrors.ErrValidation)
	}

	purchase, err := s.purchaseRepo.GetPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.Status != domain.PurchasePending {
		return nil, fmt.Errorf("%w: only pending purchases can be approved", apperrors.ErrConflict)
	}
	if _, err := s.accountRepo.GetAccountByID(ctx, req.AccountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown account", apperrors.ErrValidation)
		}
		return nil, err
	}

	now := time.Now()
	purchase.Status = domain.PurchaseApproved
	purchase.AccountID = &req.AccountID
	purchase.ReviewedBy = &actor.UserID
	purchase.ReviewedAt = &now
	purchase.RejectReason = nil
	purchase.UpdatedAt = now

	if err := s.purchaseRepo.UpdatePurchase(ctx, purchase); err != nil {
		logger.Error("Failed to approve purchase", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
		return nil, err
	}

	stored, err := s.purchaseRepo.GetPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	s.cache.Upsert(*stored)
	s.track(actorID, "purchase_approved", stored)
	logger.Info("Purchase approved", slog.String("purchase_id", purchaseID))
	return stored, nil
}

// RejectPurchase moves a pending purchase to rejected. A reason is mandatory
// so the submitter knows what to fix. The submitter is notified best effort.
func (s *PurchaseService) RejectPurchase(ctx context.Context, actorID, purchaseID string, req dto.RejectPurchaseRequest) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.reviewer(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if req.Reason == "" {
		return nil, fmt.Errorf("%w: a reason is required to reject a purchase", apperrors.ErrValidation)
	}

	purchase, err := s.purchaseRepo.GetPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.Status != domain.PurchasePending {
		return nil, fmt.Errorf("%w: only pending purchases can be rejected", apperrors.ErrConflict)
	}

	now := time.Now()
	purchase.Status = domain.PurchaseRejected
	purchase.ReviewedBy = &actor.UserID
	purchase.ReviewedAt = &now
	purchase.RejectReason = &req.Reason
	purchase.UpdatedAt = now

	if err := s.purchaseRepo.UpdatePurchase(ctx, purchase); err != nil {
		logger.Error("Failed to reject purchase", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
		return nil, err
	}

	stored, err := s.purchaseRepo.GetPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	s.cache.Upsert(*stored)
	s.track(actorID, "purchase_rejected", stored)
	s.notifyRejection(ctx, stored)
	logger.Info("Purchase rejected", slog.String("purchase_id", purchaseID))
	return stored, nil
}

// notifyRejection tells the submitter their purchase came back. Failures are
// logged and swallowed, the rejection itself already succeeded.
func (s *PurchaseService) notifyRejection(ctx context.Context, purchase *domain.Purchase) {
	logger := middleware.GetLoggerFromCtx(ctx)

	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Warn("Failed to load settings for notification", slog.String("error", err.Error()))
	}

	submitter := purchase.SubmittedBy
	if purchase.Submitter != nil {
		submitter = purchase.Submitter.FullName()
	}
	reason := ""
	if purchase.RejectReason != nil {
		reason = *purchase.RejectReason
	}
	message := fmt.Sprintf("Purchase %q (%s) by %s was rejected: %s",
		purchase.Description, utils.FormatAmount(purchase.Amount, settings), submitter, reason)

	if err := s.notifier.Notify(ctx, message); err != nil {
		logger.Warn("Failed to send rejection notification", slog.String("error", err.Error()), slog.String("purchase_id", purchase.PurchaseID))
	}
}

// applyRejectedPatch copies the non-nil request fields onto the purchase,
// validating amounts and category kind. Nil fields keep their previous values.
func (s *PurchaseService) applyRejectedPatch(ctx context.Context, purchase *domain.Purchase, req dto.UpdateRejectedPurchaseRequest) error {
	if req.Description != nil {
		purchase.Description = *req.Description
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		purchase.Amount = *req.Amount
	}
	if req.CategoryID != nil {
		category, err := s.categoryRepo.GetCategoryByID(ctx, *req.CategoryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: unknown category", apperrors.ErrValidation)
			}
			return err
		}
		if category.Kind != domain.CategoryPurchase {
			return fmt.Errorf("%w: category %s is not a purchase category", apperrors.ErrValidation, category.CategoryID)
		}
		purchase.CategoryID = *req.CategoryID
	}
	if req.PurchaseDate != nil {
		purchase.PurchaseDate = *req.PurchaseDate
	}
	if req.Notes != nil {
		purchase.Notes = *req.Notes
	}
	if req.Receipt != nil {
		receiptURL, err := s.uploadReceipt(ctx, purchase.PurchaseID, req.Receipt)
		if err != nil {
			return err
		}
		if receiptURL != nil {
			purchase.ReceiptURL = receiptURL
		}
	}
	return nil
}

// EditRejectedPurchase lets the submitter correct fields on their rejected
// purchase without sending it back for review. The purchase stays rejected
// and the review verdict is left in place.
func (s *PurchaseService) EditRejectedPurchase(ctx context.Context, actorID, purchaseID string, req dto.UpdateRejectedPurchaseRequest) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	purchase, err := s.purchaseRepo.GetPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.SubmittedBy != actorID {
		return nil, fmt.Errorf("%w: only the submitter can edit a rejected purchase", apperrors.ErrForbidden)
	}
	if purchase.Status != domain.PurchaseRejected {
		return nil, fmt.Errorf("%w: only rejected purchases can be edited", apperrors.ErrConflict)
	}

	if err := s.applyRejectedPatch(ctx, purchase, req); err != nil {
		return nil, err
	}
	purchase.UpdatedAt = time.Now()

	if err := s.purchaseRepo.UpdatePurchase(ctx, purchase); err != nil {
		logger.Error("Failed to edit rejected purchase", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
		return nil, err
	}

	stored, err := s.purchaseRepo.GetPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	s.cache.Upsert(*stored)
	s.track(actorID, "purchase_edited", stored)
	logger.Info("Rejected purchase edited", slog.String("purchase_id", purchaseID))
	return stored, nil
}

// ResubmitPurchase lets the submitter fix and resend their rejected purchase.
// Omitted fields keep their previous values; the review verdict is cleared.
func (s *PurchaseService) ResubmitPurchase(ctx context.Context, actorID, purchaseID string, req dto.UpdateRejectedPurchaseRequest) (*domain.Purchase, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	purchase, err := s.purchaseRepo.GetPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase.SubmittedBy != actorID {
		return nil, fmt.Errorf("%w: only the submitter can resubmit a purchase", apperrors.ErrForbidden)
	}
	if purchase.Status != domain.PurchaseRejected {
		return nil, fmt.Errorf("%w: only rejected purchases can be resubmitted", apperrors.ErrConflict)
	}

	if err := s.applyRejectedPatch(ctx, purchase, req); err != nil {
		return nil, err
	}

	purchase.Status = domain.PurchasePending
	purchase.ReviewedBy = nil
	purchase.ReviewedAt = nil
	purchase.RejectReason = nil
	purchase.UpdatedAt = time.Now()

	if err := s.purchaseRepo.UpdatePurchase(ctx, purchase); err != nil {
		logger.Error("Failed to resubmit purchase", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
		return nil, err
	}

	stored, err := s.purchaseRepo.GetPurchaseByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	s.cache.Upsert(*stored)
	s.track(actorID, "purchase_resubmitted", stored)
	logger.Info("Purchase resubmitted", slog.String("purchase_id", purchaseID))
	return stored, nil
}

// DeletePurchase removes a purchase. Submitters can delete their own pending
// or rejected purchases; reviewers can delete anything not yet approved.
func (s *PurchaseService) DeletePurchase(ctx context.Context, actorID, purchaseID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userRepo.GetUserByID(ctx, actorID)
	if err != nil {
		return err
	}
	purchase, err := s.purchaseRepo.GetPurchaseByID(ctx, purchaseID)
	if err != nil {
		return err
	}
	if purchase.Status == domain.PurchaseApproved {
		return fmt.Errorf("%w: approved purchases cannot be deleted", apperrors.ErrConflict)
	}
	if purchase.SubmittedBy != actorID && !actor.Role.CanReviewPurchases() {
		return fmt.Errorf("%w: only the submitter or a reviewer can delete a purchase", apperrors.ErrForbidden)
	}

	if err := s.purchaseRepo.DeletePurchase(ctx, purchaseID); err != nil {
		logger.Error("Failed to delete purchase", slog.String("error", err.Error()), slog.String("purchase_id", purchaseID))
		return err
	}

	s.cache.Remove(purchaseID)
	logger.Info("Purchase deleted", slog.String("purchase_id", purchaseID))
	return nil
}
