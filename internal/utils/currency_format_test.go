package utils_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	"github.com/tesorapp/tesoreria_backend/internal/utils"
)

func TestFormatAmountUsesConfiguredSymbol(t *testing.T) {
	settings := &domain.Settings{CurrencyCode: "GTQ", CurrencySymbol: "Q"}
	got := utils.FormatAmount(decimal.RequireFromString("1250.5"), settings)
	assert.Equal(t, "Q1250.50", got)
}

func TestFormatAmountDefaultsToDollar(t *testing.T) {
	got := utils.FormatAmount(decimal.RequireFromString("10"), nil)
	assert.Equal(t, "$10.00", got)
}
