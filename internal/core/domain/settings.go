package domain

import "time"

// Settings is the singleton system configuration: the display currency and
// organization identity. Currency is a single configured display unit; no
// conversion happens anywhere in the system.
type Settings struct {
	SettingsID       string    `json:"settingsID"`
	CurrencyCode     string    `json:"currencyCode"`   // e.g. "MXN", "USD", "GTQ"
	CurrencySymbol   string    `json:"currencySymbol"` // e.g. "$", "Q"
	CurrencyName     string    `json:"currencyName"`
	OrganizationName string    `json:"organizationName"`
	LogoURL          string    `json:"logoURL,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt"`
	UpdatedBy        string    `json:"updatedBy"`
}
