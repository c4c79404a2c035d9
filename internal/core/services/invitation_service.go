package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tesorapp/tesoreria_backend/internal/apperrors"
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/tesorapp/tesoreria_backend/internal/core/ports/repositories"
	portssvc "github.com/tesorapp/tesoreria_backend/internal/core/ports/services"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
	"github.com/tesorapp/tesoreria_backend/internal/middleware"
	"github.com/tesorapp/tesoreria_backend/internal/utils"
)

// invitationTTL is how long an invitation token stays redeemable.
const invitationTTL = 7 * 24 * time.Hour

// InvitationService manages the invite-only onboarding flow. Membership is
// closed: the only way in is a token minted by an administrator.
type InvitationService struct {
	invitationRepo portsrepo.InvitationRepository
	userRepo       portsrepo.UserRepository
}

// NewInvitationService creates the invitation service.
func NewInvitationService(invitationRepo portsrepo.InvitationRepository, userRepo portsrepo.UserRepository) *InvitationService {
	return &InvitationService{invitationRepo: invitationRepo, userRepo: userRepo}
}

var _ portssvc.InvitationSvcFacade = (*InvitationService)(nil)

func (s *InvitationService) admin(ctx context.Context, actorID string) error {
	actor, err := s.userRepo.GetUserByID(ctx, actorID)
	if err != nil {
		return err
	}
	if !actor.Role.CanManageUsers() {
		return fmt.Errorf("%w: role %s cannot manage invitations", apperrors.ErrForbidden, actor.Role)
	}
	return nil
}

// CreateInvitation mints a new single-use invitation token.
func (s *InvitationService) CreateInvitation(ctx context.Context, actorID string, req dto.CreateInvitationRequest) (*domain.Invitation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.admin(ctx, actorID); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepo.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: a member with this email already exists", apperrors.ErrDuplicate)
	}

	token, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation token: %w", err)
	}

	now := time.Now()
	invitation := domain.Invitation{
		InvitationID: uuid.NewString(),
		Email:        email,
		Role:         domain.Role(req.Role),
		Token:        token,
		InvitedBy:    actorID,
		Used:         false,
		ExpiresAt:    now.Add(invitationTTL),
		CreatedAt:    now,
	}

	if err := s.invitationRepo.CreateInvitation(ctx, &invitation); err != nil {
		logger.Error("Failed to save invitation", slog.String("error", err.Error()), slog.String("invitation_id", invitation.InvitationID))
		return nil, err
	}

	logger.Info("Invitation created", slog.String("invitation_id", invitation.InvitationID), slog.String("role", req.Role))
	return &invitation, nil
}

// ListInvitations retrieves every invitation. Administrator only.
func (s *InvitationService) ListInvitations(ctx context.Context, actorID string) ([]domain.Invitation, error) {
	if err := s.admin(ctx, actorID); err != nil {
		return nil, err
	}

	invitations, err := s.invitationRepo.ListInvitations(ctx)
	if err != nil {
		return nil, err
	}
	if invitations == nil {
		invitations = []domain.Invitation{}
	}
	return invitations, nil
}

// RevokeInvitation deletes an unredeemed invitation.
func (s *InvitationService) RevokeInvitation(ctx context.Context, actorID, invitationID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.admin(ctx, actorID); err != nil {
		return err
	}

	if err := s.invitationRepo.DeleteInvitation(ctx, invitationID); err != nil {
		logger.Error("Failed to revoke invitation", slog.String("error", err.Error()), slog.String("invitation_id", invitationID))
		return err
	}

	logger.Info("Invitation revoked", slog.String("invitation_id", invitationID))
	return nil
}
