package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

func TestApprovedPurchaseTotal(t *testing.T) {
	tests := []struct {
		name      string
		purchases []domain.Purchase
		want      decimal.Decimal
	}{
		{
			name:      "empty snapshot",
			purchases: []domain.Purchase{},
			want:      decimal.Zero,
		},
		{
			name: "sums only approved purchases",
			purchases: []domain.Purchase{
				{Status: domain.PurchaseApproved, Amount: decimal.NewFromFloat(100.00)},
				{Status: domain.PurchaseApproved, Amount: decimal.NewFromFloat(250.50)},
				{Status: domain.PurchasePending, Amount: decimal.NewFromFloat(999.99)},
				{Status: domain.PurchaseRejected, Amount: decimal.NewFromFloat(42.00)},
			},
			want: decimal.NewFromFloat(350.50),
		},
		{
			name: "nothing approved",
			purchases: []domain.Purchase{
				{Status: domain.PurchasePending, Amount: decimal.NewFromFloat(10.00)},
			},
			want: decimal.Zero,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ApprovedPurchaseTotal(tt.purchases)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestPurchasesByStatus(t *testing.T) {
	purchases := []domain.Purchase{
		{PurchaseID: "p1", Status: domain.PurchasePending},
		{PurchaseID: "p2", Status: domain.PurchaseApproved},
		{PurchaseID: "p3", Status: domain.PurchasePending},
		{PurchaseID: "p4", Status: domain.PurchaseRejected},
	}

	pending := domain.PurchasesByStatus(purchases, domain.PurchasePending)
	assert.Len(t, pending, 2)
	assert.Equal(t, "p1", pending[0].PurchaseID)
	assert.Equal(t, "p3", pending[1].PurchaseID)

	approved := domain.PurchasesByStatus(purchases, domain.PurchaseApproved)
	assert.Len(t, approved, 1)

	assert.Empty(t, domain.PurchasesByStatus(nil, domain.PurchaseApproved))
}

func TestRejectedPurchasesFor(t *testing.T) {
	purchases := []domain.Purchase{
		{PurchaseID: "p1", Status: domain.PurchaseRejected, SubmittedBy: "alice"},
		{PurchaseID: "p2", Status: domain.PurchaseRejected, SubmittedBy: "bob"},
		{PurchaseID: "p3", Status: domain.PurchasePending, SubmittedBy: "alice"},
		{PurchaseID: "p4", Status: domain.PurchaseRejected, SubmittedBy: "alice"},
	}

	mine := domain.RejectedPurchasesFor(purchases, "alice")
	assert.Len(t, mine, 2)
	assert.Equal(t, "p1", mine[0].PurchaseID)
	assert.Equal(t, "p4", mine[1].PurchaseID)

	assert.Empty(t, domain.RejectedPurchasesFor(purchases, "carol"))
}

func TestPurchaseStatusIsValid(t *testing.T) {
	assert.True(t, domain.PurchasePending.IsValid())
	assert.True(t, domain.PurchaseApproved.IsValid())
	assert.True(t, domain.PurchaseRejected.IsValid())
	assert.False(t, domain.PurchaseStatus("archived").IsValid())
}
