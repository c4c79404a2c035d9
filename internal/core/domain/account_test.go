package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

func TestTotalBalance(t *testing.T) {
	tests := []struct {
		name     string
		accounts []domain.Account
		want     decimal.Decimal
	}{
		{
			name:     "no accounts",
			accounts: nil,
			want:     decimal.Zero,
		},
		{
			name: "skips inactive accounts",
			accounts: []domain.Account{
				{Balance: decimal.NewFromFloat(1000.00), IsActive: true},
				{Balance: decimal.NewFromFloat(250.75), IsActive: true},
				{Balance: decimal.NewFromFloat(9999.00), IsActive: false},
			},
			want: decimal.NewFromFloat(1250.75),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.TotalBalance(tt.accounts)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestActiveAccounts(t *testing.T) {
	accounts := []domain.Account{
		{AccountID: "a1", IsActive: true},
		{AccountID: "a2", IsActive: false},
		{AccountID: "a3", IsActive: true},
	}

	active := domain.ActiveAccounts(accounts)
	assert.Len(t, active, 2)
	assert.Equal(t, "a1", active[0].AccountID)
	assert.Equal(t, "a3", active[1].AccountID)
}
