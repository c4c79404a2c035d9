package repositories

import (
	"context"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// SettingsRepository defines persistence operations for the settings
// singleton row.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, settings *domain.Settings) error
}
