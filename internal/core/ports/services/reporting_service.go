package services

import (
	"context"
	"time"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// ReportingSvcFacade defines the dashboard aggregation operations.
type ReportingSvcFacade interface {
	GetFinancialSummary(ctx context.Context, month time.Time) (*domain.FinancialSummary, error)
}
