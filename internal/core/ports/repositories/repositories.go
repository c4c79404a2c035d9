// Package repositories defines the persistence interfaces the core services
// depend on. Implementations live under internal/repositories.
package repositories

// RepositoryProvider bundles every repository interface for wiring.
type RepositoryProvider struct {
	PurchaseRepo   PurchaseRepository
	IncomeRepo     IncomeRepository
	AccountRepo    AccountRepository
	CategoryRepo   CategoryRepository
	UserRepo       UserRepository
	InvitationRepo InvitationRepository
	SettingsRepo   SettingsRepository
	ReportingRepo  ReportingRepository
}
