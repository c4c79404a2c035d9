package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/idtoken"

	"github.com/tesorapp/tesoreria_backend/internal/apperrors"
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/tesorapp/tesoreria_backend/internal/core/ports/repositories"
	portssvc "github.com/tesorapp/tesoreria_backend/internal/core/ports/services"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
	"github.com/tesorapp/tesoreria_backend/internal/middleware"
	"github.com/tesorapp/tesoreria_backend/internal/platform/config"
	"github.com/tesorapp/tesoreria_backend/internal/utils"
)

// AuthService issues and rotates tokens. Registration is invite-only: a
// usable invitation token is required both for password signup and for the
// first Google login.
type AuthService struct {
	cfg            *config.Config
	userRepo       portsrepo.UserRepository
	invitationRepo portsrepo.InvitationRepository
}

// NewAuthService creates the authentication service.
func NewAuthService(cfg *config.Config, userRepo portsrepo.UserRepository, invitationRepo portsrepo.InvitationRepository) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo, invitationRepo: invitationRepo}
}

var _ portssvc.AuthSvcFacade = (*AuthService)(nil)

// issueTokens generates a fresh access/refresh token pair and persists the
// refresh token hash, rotating out any previous session.
func (s *AuthService) issueTokens(ctx context.Context, user *domain.User) (*portssvc.AuthResult, error) {
	accessToken, err := utils.GenerateJWT(user.UserID, string(user.Role), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	now := time.Now()
	refreshExpiry := now.Add(s.cfg.RefreshTokenExpiryDuration)
	refreshHash := utils.HashRefreshToken(refreshToken)

	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, &refreshHash, &refreshExpiry); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &portssvc.AuthResult{
		User:             user,
		AccessToken:      accessToken,
		AccessExpiresAt:  now.Add(s.cfg.JWTExpiryDuration),
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExpiry,
	}, nil
}

// redeemInvitation validates and consumes the invitation token for the given
// email, returning the role the new member gets.
func (s *AuthService) redeemInvitation(ctx context.Context, token, email string) (domain.Role, error) {
	invitation, err := s.invitationRepo.GetInvitationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", fmt.Errorf("%w: invalid invitation token", apperrors.ErrValidation)
		}
		return "", err
	}
	if !invitation.IsUsable(time.Now()) {
		return "", fmt.Errorf("%w: invitation is expired or already used", apperrors.ErrValidation)
	}
	if !strings.EqualFold(invitation.Email, email) {
		return "", fmt.Errorf("%w: invitation was issued for a different email", apperrors.ErrValidation)
	}
	if err := s.invitationRepo.MarkInvitationUsed(ctx, invitation.InvitationID); err != nil {
		return "", err
	}
	return invitation.Role, nil
}

// VerifyInvitation checks an invitation token without consuming it, so the
// registration form can be prefilled before the member commits.
func (s *AuthService) VerifyInvitation(ctx context.Context, token string) (*domain.Invitation, error) {
	invitation, err := s.invitationRepo.GetInvitationByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid invitation token", apperrors.ErrValidation)
		}
		return nil, err
	}
	if !invitation.IsUsable(time.Now()) {
		return nil, fmt.Errorf("%w: invitation is expired or already used", apperrors.ErrValidation)
	}
	return invitation, nil
}

// Register creates a new member from an invitation and logs them in.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterUserRequest) (*portssvc.AuthResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.userRepo.GetUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: a member with this email already exists", apperrors.ErrDuplicate)
	}

	role, err := s.redeemInvitation(ctx, req.InvitationToken, email)
	if err != nil {
		return nil, err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         role,
		IsActive:     true,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.userRepo.CreateUser(ctx, &user); err != nil {
		logger.Error("Failed to create user", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("User registered", slog.String("new_user_id", user.UserID), slog.String("role", string(role)))
	return s.issueTokens(ctx, &user)
}

// Login authenticates with email and password.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*portssvc.AuthResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", apperrors.ErrUnauthorized)
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	logger.Info("User logged in", slog.String("login_user_id", user.UserID))
	return s.issueTokens(ctx, user)
}

// LoginWithGoogle authenticates with a verified Google ID token. Unknown
// emails are turned away since membership is invite-only.
func (s *AuthService) LoginWithGoogle(ctx context.Context, req dto.GoogleLoginRequest) (*portssvc.AuthResult, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, fmt.Errorf("%w: google login is not configured", apperrors.ErrValidation)
	}

	payload, err := idtoken.Validate(ctx, req.IDToken, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("%w: google ID token validation failed", apperrors.ErrUnauthorized)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, fmt.Errorf("%w: google token is missing the email claim", apperrors.ErrUnauthorized)
	}

	picture, _ := payload.Claims["picture"].(string)
	return s.LoginWithGoogleProfile(ctx, email, picture)
}

// LoginWithGoogleProfile logs in an existing member by their verified Google
// email. Unknown emails are turned away since membership is invite-only.
func (s *AuthService) LoginWithGoogleProfile(ctx context.Context, email, avatarURL string) (*portssvc.AuthResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.GetUserByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no member with this email, ask an administrator for an invitation", apperrors.ErrForbidden)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", apperrors.ErrUnauthorized)
	}

	if avatarURL != "" && user.AvatarURL == "" {
		user.AvatarURL = avatarURL
	}

	logger.Info("User logged in with Google", slog.String("login_user_id", user.UserID))
	return s.issueTokens(ctx, user)
}

// Refresh rotates a valid refresh token into a new token pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*portssvc.AuthResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	claims, err := utils.ParseAndValidateJWT(refreshToken, s.cfg.JWTSecret)
	// Refresh tokens are opaque random strings, not JWTs; a parseable JWT
	// here means someone is replaying an access token.
	if err == nil && claims != nil {
		return nil, fmt.Errorf("%w: invalid refresh token", apperrors.ErrUnauthorized)
	}

	hash := utils.HashRefreshToken(refreshToken)
	user, err := s.findUserByRefreshHash(ctx, hash)
	if err != nil {
		return nil, err
	}
	if user.RefreshTokenExpiryTime == nil || time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, fmt.Errorf("%w: refresh token expired", apperrors.ErrUnauthorized)
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is deactivated", apperrors.ErrUnauthorized)
	}

	logger.Info("Refresh token rotated", slog.String("refresh_user_id", user.UserID))
	return s.issueTokens(ctx, user)
}

// findUserByRefreshHash scans the member list for the matching session hash.
// The member set is small, so a linear scan beats an extra index.
func (s *AuthService) findUserByRefreshHash(ctx context.Context, hash string) (*domain.User, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].RefreshTokenHash != "" && users[i].RefreshTokenHash == hash {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("%w: invalid refresh token", apperrors.ErrUnauthorized)
}

// Logout invalidates the user's refresh token.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.userRepo.UpdateRefreshToken(ctx, userID, nil, nil); err != nil {
		logger.Error("Failed to clear refresh token", slog.String("error", err.Error()))
		return err
	}

	logger.Info("User logged out")
	return nil
}
