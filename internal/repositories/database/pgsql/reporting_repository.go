package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/tesorapp/tesoreria_backend/internal/core/ports/repositories"
)

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates the read-only aggregate repository.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

func (r *ReportingRepository) sumQuery(ctx context.Context, query string, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// IncomeTotal sums deposits in the date range.
func (r *ReportingRepository) IncomeTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0) FROM incomes
		WHERE deposit_date >= $1 AND deposit_date <= $2;
	`
	total, err := r.sumQuery(ctx, query, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum incomes: %w", err)
	}
	return total, nil
}

// ApprovedPurchaseTotal sums approved purchases in the date range. Pending
// and rejected purchases never contribute to spend.
func (r *ReportingRepository) ApprovedPurchaseTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0) FROM purchases
		WHERE status = 'approved' AND purchase_date >= $1 AND purchase_date <= $2;
	`
	total, err := r.sumQuery(ctx, query, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum approved purchases: %w", err)
	}
	return total, nil
}

func (r *ReportingRepository) totalsByCategory(ctx context.Context, query string, from, to time.Time) ([]domain.CategoryTotal, error) {
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CategoryTotal, error) {
		var ct domain.CategoryTotal
		err := row.Scan(&ct.Category, &ct.Total)
		return ct, err
	})
}

// IncomeTotalsByCategory groups deposits in the range by category name.
func (r *ReportingRepository) IncomeTotalsByCategory(ctx context.Context, from, to time.Time) ([]domain.CategoryTotal, error) {
	query := `
		SELECT c.name, COALESCE(SUM(i.amount), 0)
		FROM incomes i
		JOIN categories c ON c.category_id = i.category_id
		WHERE i.deposit_date >= $1 AND i.deposit_date <= $2
		GROUP BY c.name
		ORDER BY 2 DESC;
	`
	totals, err := r.totalsByCategory(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to group incomes by category: %w", err)
	}
	return totals, nil
}

// PurchaseTotalsByCategory groups approved purchases in the range by
// category name.
func (r *ReportingRepository) PurchaseTotalsByCategory(ctx context.Context, from, to time.Time) ([]domain.CategoryTotal, error) {
	query := `
		SELECT c.name, COALESCE(SUM(p.amount), 0)
		FROM purchases p
		JOIN categories c ON c.category_id = p.category_id
		WHERE p.status = 'approved' AND p.purchase_date >= $1 AND p.purchase_date <= $2
		GROUP BY c.name
		ORDER BY 2 DESC;
	`
	totals, err := r.totalsByCategory(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to group purchases by category: %w", err)
	}
	return totals, nil
}
