package models

import "time"

// Settings is the single system_settings table row.
type Settings struct {
	SettingsID       string    `db:"settings_id"`
	CurrencyCode     string    `db:"currency_code"`
	CurrencySymbol   string    `db:"currency_symbol"`
	CurrencyName     string    `db:"currency_name"`
	OrganizationName string    `db:"organization_name"`
	LogoURL          string    `db:"logo_url"`
	UpdatedAt        time.Time `db:"updated_at"`
	UpdatedBy        string    `db:"updated_by"`
}
