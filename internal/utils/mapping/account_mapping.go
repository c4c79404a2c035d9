package mapping

import (
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	"github.com/tesorapp/tesoreria_backend/internal/models"
)

// ToModelAccount converts a domain account to its DB row shape.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:     d.AccountID,
		Name:          d.Name,
		Type:          models.AccountType(d.Type),
		AccountNumber: d.AccountNumber,
		BankName:      d.BankName,
		Balance:       d.Balance,
		Color:         d.Color,
		IsActive:      d.IsActive,
		Timestamps: models.Timestamps{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainAccount converts a DB row to the domain account.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:     m.AccountID,
		Name:          m.Name,
		Type:          domain.AccountType(m.Type),
		AccountNumber: m.AccountNumber,
		BankName:      m.BankName,
		Balance:       m.Balance,
		Color:         m.Color,
		IsActive:      m.IsActive,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
