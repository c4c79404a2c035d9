package dto

import (
	"time"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// UpdateSettingsRequest is the partial patch for the system settings. Nil
// fields keep their previous value.
type UpdateSettingsRequest struct {
	CurrencyCode     *string `json:"currencyCode"`
	CurrencySymbol   *string `json:"currencySymbol"`
	CurrencyName     *string `json:"currencyName"`
	OrganizationName *string `json:"organizationName"`
	LogoURL          *string `json:"logoURL"`
}

// SettingsResponse defines the data returned for the system settings.
type SettingsResponse struct {
	SettingsID       string    `json:"settingsID"`
	CurrencyCode     string    `json:"currencyCode"`
	CurrencySymbol   string    `json:"currencySymbol"`
	CurrencyName     string    `json:"currencyName"`
	OrganizationName string    `json:"organizationName"`
	LogoURL          string    `json:"logoURL,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt"`
	UpdatedBy        string    `json:"updatedBy"`
}

// ToSettingsResponse converts domain.Settings to SettingsResponse.
func ToSettingsResponse(s *domain.Settings) SettingsResponse {
	return SettingsResponse{
		SettingsID:       s.SettingsID,
		CurrencyCode:     s.CurrencyCode,
		CurrencySymbol:   s.CurrencySymbol,
		CurrencyName:     s.CurrencyName,
		OrganizationName: s.OrganizationName,
		LogoURL:          s.LogoURL,
		UpdatedAt:        s.UpdatedAt,
		UpdatedBy:        s.UpdatedBy,
	}
}
