package mapping

import (
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	"github.com/tesorapp/tesoreria_backend/internal/models"
)

// ToModelSettings converts the domain settings to their DB row shape.
func ToModelSettings(d domain.Settings) models.Settings {
	return models.Settings{
		SettingsID:       d.SettingsID,
		CurrencyCode:     d.CurrencyCode,
		CurrencySymbol:   d.CurrencySymbol,
		CurrencyName:     d.CurrencyName,
		OrganizationName: d.OrganizationName,
		LogoURL:          d.LogoURL,
		UpdatedAt:        d.UpdatedAt,
		UpdatedBy:        d.UpdatedBy,
	}
}

// ToDomainSettings converts a DB row to the domain settings.
func ToDomainSettings(m models.Settings) domain.Settings {
	return domain.Settings{
		SettingsID:       m.SettingsID,
		CurrencyCode:     m.CurrencyCode,
		CurrencySymbol:   m.CurrencySymbol,
		CurrencyName:     m.CurrencyName,
		OrganizationName: m.OrganizationName,
		LogoURL:          m.LogoURL,
		UpdatedAt:        m.UpdatedAt,
		UpdatedBy:        m.UpdatedBy,
	}
}
