// Package services defines the application service interfaces the HTTP layer
// depends on. Implementations live in internal/core/services.
package services

// ServiceContainer holds instances of all the application services. It is the
// entry point the handlers use to reach business logic.
type ServiceContainer struct {
	Purchase    PurchaseSvcFacade
	Income      IncomeSvcFacade
	Account     AccountSvcFacade
	Category    CategorySvcFacade
	User        UserSvcFacade
	Invitation  InvitationSvcFacade
	Settings    SettingsSvcFacade
	Auth        AuthSvcFacade
	GoogleOAuth GoogleOAuthSvcFacade
	Reporting   ReportingSvcFacade
}
