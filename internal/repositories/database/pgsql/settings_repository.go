package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tesorapp/tesoreria_backend/internal/apperrors"
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/tesorapp/tesoreria_backend/internal/core/ports/repositories"
	"github.com/tesorapp/tesoreria_backend/internal/models"
	"github.com/tesorapp/tesoreria_backend/internal/utils/mapping"
)

type PgxSettingsRepository struct {
	BaseRepository
}

// newPgxSettingsRepository creates a new repository for the settings row.
func newPgxSettingsRepository(pool *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

// GetSettings retrieves the single settings row.
func (r *PgxSettingsRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	query := `
		SELECT settings_id, currency_code, currency_symbol, currency_name,
		       organization_name, logo_url, updated_at, updated_by
		FROM system_settings
		LIMIT 1;
	`
	var m models.Settings
	err := r.Pool.QueryRow(ctx, query).Scan(
		&m.SettingsID, &m.CurrencyCode, &m.CurrencySymbol, &m.CurrencyName,
		&m.OrganizationName, &m.LogoURL, &m.UpdatedAt, &m.UpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	settings := mapping.ToDomainSettings(m)
	return &settings, nil
}

// UpdateSettings persists the settings singleton.
func (r *PgxSettingsRepository) UpdateSettings(ctx context.Context, settings *domain.Settings) error {
	m := mapping.ToModelSettings(*settings)

	query := `
		UPDATE system_settings SET
			currency_code = $2, currency_symbol = $3, currency_name = $4,
			organization_name = $5, logo_url = $6, updated_at = $7, updated_by = $8
		WHERE settings_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.SettingsID, m.CurrencyCode, m.CurrencySymbol, m.CurrencyName,
		m.OrganizationName, m.LogoURL, m.UpdatedAt, m.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
