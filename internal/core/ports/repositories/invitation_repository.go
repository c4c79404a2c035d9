package repositories

import (
	"context"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// InvitationRepository defines persistence operations for invitations.
type InvitationRepository interface {
	CreateInvitation(ctx context.Context, invitation *domain.Invitation) error
	GetInvitationByToken(ctx context.Context, token string) (*domain.Invitation, error)
	ListInvitations(ctx context.Context) ([]domain.Invitation, error)
	MarkInvitationUsed(ctx context.Context, invitationID string) error
	DeleteInvitation(ctx context.Context, invitationID string) error
}
