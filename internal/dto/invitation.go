package dto

import (
	"time"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// CreateInvitationRequest defines the payload to invite a new member.
type CreateInvitationRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=administrator treasurer purchase_manager"`
}

// InvitationResponse defines the data returned for an invitation.
type InvitationResponse struct {
	InvitationID string    `json:"invitationID"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	Token        string    `json:"token"`
	InvitedBy    string    `json:"invitedBy"`
	Used         bool      `json:"used"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// VerifyInvitationResponse is returned to the public registration form so it
// can be prefilled before the token is consumed.
type VerifyInvitationResponse struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ListInvitationsResponse wraps the invitation list.
type ListInvitationsResponse struct {
	Invitations []InvitationResponse `json:"invitations"`
}

// ToInvitationResponse converts a domain.Invitation to InvitationResponse.
func ToInvitationResponse(i *domain.Invitation) InvitationResponse {
	return InvitationResponse{
		InvitationID: i.InvitationID,
		Email:        i.Email,
		Role:         string(i.Role),
		Token:        i.Token,
		InvitedBy:    i.InvitedBy,
		Used:         i.Used,
		ExpiresAt:    i.ExpiresAt,
		CreatedAt:    i.CreatedAt,
	}
}

// ToInvitationResponses converts a slice of domain invitations.
func ToInvitationResponses(invitations []domain.Invitation) []InvitationResponse {
	out := make([]InvitationResponse, len(invitations))
	for i := range invitations {
		out[i] = ToInvitationResponse(&invitations[i])
	}
	return out
}
