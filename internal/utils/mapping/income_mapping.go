package mapping

import (
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	"github.com/tesorapp/tesoreria_backend/internal/models"
)

// ToModelIncome converts a domain income record to its DB row shape.
func ToModelIncome(d domain.Income) models.Income {
	return models.Income{
		IncomeID:    d.IncomeID,
		Description: d.Description,
		Amount:      d.Amount,
		CategoryID:  d.CategoryID,
		AccountID:   d.AccountID,
		DepositDate: d.DepositDate,
		ReceiptURL:  d.ReceiptURL,
		Notes:       d.Notes,
		SubmittedBy: d.SubmittedBy,
		Timestamps: models.Timestamps{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// ToDomainIncome converts a DB row to the domain income record.
func ToDomainIncome(m models.Income) domain.Income {
	return domain.Income{
		IncomeID:    m.IncomeID,
		Description: m.Description,
		Amount:      m.Amount,
		CategoryID:  m.CategoryID,
		AccountID:   m.AccountID,
		DepositDate: m.DepositDate,
		ReceiptURL:  m.ReceiptURL,
		Notes:       m.Notes,
		SubmittedBy: m.SubmittedBy,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}
