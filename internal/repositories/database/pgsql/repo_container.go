package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tesorapp/tesoreria_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		PurchaseRepo:   newPgxPurchaseRepository(dbPool),
		IncomeRepo:     newPgxIncomeRepository(dbPool),
		AccountRepo:    newPgxAccountRepository(dbPool),
		CategoryRepo:   newPgxCategoryRepository(dbPool),
		UserRepo:       newPgxUserRepository(dbPool),
		InvitationRepo: newPgxInvitationRepository(dbPool),
		SettingsRepo:   newPgxSettingsRepository(dbPool),
		ReportingRepo:  newReportingRepository(dbPool),
	}
}
