package services

import (
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/tesorapp/tesoreria_backend/internal/core/ports/repositories"
	portssvc "github.com/tesorapp/tesoreria_backend/internal/core/ports/services"
	"github.com/tesorapp/tesoreria_backend/internal/platform/config"
	"github.com/tesorapp/tesoreria_backend/internal/platform/notify"
	"github.com/tesorapp/tesoreria_backend/internal/platform/storage"
	"github.com/tesorapp/tesoreria_backend/internal/utils"
	"github.com/tesorapp/tesoreria_backend/internal/viewstate"
)

// Dependencies carries the platform adapters the services need besides the
// repositories.
type Dependencies struct {
	BlobStore     storage.BlobStore
	Notifier      notify.Notifier
	PosthogClient *utils.PosthogClientWrapper
}

// NewServiceContainer wires every application service with its repositories
// and platform adapters.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, deps Dependencies) *portssvc.ServiceContainer {
	purchaseCache := viewstate.NewCollection(func(p domain.Purchase) string { return p.PurchaseID })
	incomeCache := viewstate.NewCollection(func(i domain.Income) string { return i.IncomeID })

	container := &portssvc.ServiceContainer{}

	container.Purchase = NewPurchaseService(repos, deps.BlobStore, cfg.ReceiptsBucket, deps.Notifier, deps.PosthogClient, purchaseCache)
	container.Income = NewIncomeService(repos, deps.BlobStore, cfg.IncomeReceiptsBucket, incomeCache)
	container.Account = NewAccountService(repos.AccountRepo, repos.UserRepo)
	container.Category = NewCategoryService(repos.CategoryRepo, repos.UserRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Invitation = NewInvitationService(repos.InvitationRepo, repos.UserRepo)
	container.Settings = NewSettingsService(repos.SettingsRepo, repos.UserRepo)
	container.Auth = NewAuthService(cfg, repos.UserRepo, repos.InvitationRepo)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo, repos.PurchaseRepo)

	return container
}
