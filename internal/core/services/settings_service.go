package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tesorapp/tesoreria_backend/internal/apperrors"
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/tesorapp/tesoreria_backend/internal/core/ports/repositories"
	portssvc "github.com/tesorapp/tesoreria_backend/internal/core/ports/services"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
	"github.com/tesorapp/tesoreria_backend/internal/middleware"
)

// SettingsService manages the system settings singleton: currency display and
// organization identity.
type SettingsService struct {
	settingsRepo portsrepo.SettingsRepository
	userRepo     portsrepo.UserRepository
}

// NewSettingsService creates the settings service.
func NewSettingsService(settingsRepo portsrepo.SettingsRepository, userRepo portsrepo.UserRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, userRepo: userRepo}
}

var _ portssvc.SettingsSvcFacade = (*SettingsService)(nil)

// GetSettings retrieves the current system settings.
func (s *SettingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	return s.settingsRepo.GetSettings(ctx)
}

// UpdateSettings patches the settings singleton. Administrator only; omitted
// fields keep their previous values.
func (s *SettingsService) UpdateSettings(ctx context.Context, actorID string, req dto.UpdateSettingsRequest) (*domain.Settings, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	actor, err := s.userRepo.GetUserByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.CanManageUsers() {
		return nil, fmt.Errorf("%w: role %s cannot change system settings", apperrors.ErrForbidden, actor.Role)
	}

	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	if req.CurrencyCode != nil {
		if len(*req.CurrencyCode) != 3 {
			return nil, fmt.Errorf("%w: currency code must be 3 letters", apperrors.ErrValidation)
		}
		settings.CurrencyCode = *req.CurrencyCode
	}
	if req.CurrencySymbol != nil {
		settings.CurrencySymbol = *req.CurrencySymbol
	}
	if req.CurrencyName != nil {
		settings.CurrencyName = *req.CurrencyName
	}
	if req.OrganizationName != nil {
		settings.OrganizationName = *req.OrganizationName
	}
	if req.LogoURL != nil {
		settings.LogoURL = *req.LogoURL
	}
	settings.UpdatedAt = time.Now()
	settings.UpdatedBy = actorID

	if err := s.settingsRepo.UpdateSettings(ctx, settings); err != nil {
		logger.Error("Failed to update settings", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Settings updated", slog.String("currency_code", settings.CurrencyCode))
	return settings, nil
}
