package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

func TestIncomeTotal(t *testing.T) {
	tests := []struct {
		name    string
		incomes []domain.Income
		want    decimal.Decimal
	}{
		{
			name:    "empty snapshot",
			incomes: []domain.Income{},
			want:    decimal.Zero,
		},
		{
			name: "sums every record",
			incomes: []domain.Income{
				{Amount: decimal.NewFromFloat(500.00)},
				{Amount: decimal.NewFromFloat(75.25)},
				{Amount: decimal.NewFromFloat(0.75)},
			},
			want: decimal.NewFromFloat(576.00),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.IncomeTotal(tt.incomes)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}
