package utils

import (
	"github.com/shopspring/decimal"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// FormatAmount renders an amount with the organization's configured display
// currency, e.g. "Q1250.50". The currency is display-only; no conversion.
func FormatAmount(amount decimal.Decimal, settings *domain.Settings) string {
	symbol := "$"
	if settings != nil && settings.CurrencySymbol != "" {
		symbol = settings.CurrencySymbol
	}
	return symbol + amount.StringFixed(2)
}
