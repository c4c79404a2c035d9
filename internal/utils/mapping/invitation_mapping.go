package mapping

import (
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	"github.com/tesorapp/tesoreria_backend/internal/models"
)

// ToModelInvitation converts a domain invitation to its DB row shape.
func ToModelInvitation(d domain.Invitation) models.Invitation {
	return models.Invitation{
		InvitationID: d.InvitationID,
		Email:        d.Email,
		Role:         string(d.Role),
		Token:        d.Token,
		InvitedBy:    d.InvitedBy,
		Used:         d.Used,
		ExpiresAt:    d.ExpiresAt,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainInvitation converts a DB row to the domain invitation.
func ToDomainInvitation(m models.Invitation) domain.Invitation {
	return domain.Invitation{
		InvitationID: m.InvitationID,
		Email:        m.Email,
		Role:         domain.Role(m.Role),
		Token:        m.Token,
		InvitedBy:    m.InvitedBy,
		Used:         m.Used,
		ExpiresAt:    m.ExpiresAt,
		CreatedAt:    m.CreatedAt,
	}
}
