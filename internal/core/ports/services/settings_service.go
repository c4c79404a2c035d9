package services

import (
	"context"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
)

// SettingsSvcFacade defines system settings operations.
type SettingsSvcFacade interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, actorID string, req dto.UpdateSettingsRequest) (*domain.Settings, error)
}
