package services

import (
	"context"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
)

// InvitationSvcFacade defines invitation management operations.
type InvitationSvcFacade interface {
	CreateInvitation(ctx context.Context, actorID string, req dto.CreateInvitationRequest) (*domain.Invitation, error)
	ListInvitations(ctx context.Context, actorID string) ([]domain.Invitation, error)
	RevokeInvitation(ctx context.Context, actorID, invitationID string) error
}
