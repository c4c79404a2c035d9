package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// ReportingRepository defines the read-only aggregate queries behind the
// dashboard. From/To bound the relevant dates inclusively.
type ReportingRepository interface {
	IncomeTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	ApprovedPurchaseTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	IncomeTotalsByCategory(ctx context.Context, from, to time.Time) ([]domain.CategoryTotal, error)
	PurchaseTotalsByCategory(ctx context.Context, from, to time.Time) ([]domain.CategoryTotal, error)
}
