package services

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
)

// AuthResult bundles the issued tokens with the authenticated user.
type AuthResult struct {
	User             *domain.User
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// AuthSvcFacade defines authentication and registration operations.
type AuthSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterUserRequest) (*AuthResult, error)
	Login(ctx context.Context, req dto.LoginRequest) (*AuthResult, error)
	LoginWithGoogle(ctx context.Context, req dto.GoogleLoginRequest) (*AuthResult, error)
	LoginWithGoogleProfile(ctx context.Context, email, avatarURL string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, userID string) error
	VerifyInvitation(ctx context.Context, token string) (*domain.Invitation, error)
}

// GoogleOAuthSvcFacade drives the server-side Google OAuth code flow used by
// browser clients. The ID-token path on AuthSvcFacade stays independent of it.
type GoogleOAuthSvcFacade interface {
	// GenerateStateString mints the CSRF state for one authorization round trip.
	GenerateStateString(ctx context.Context) (string, error)
	// LoginURL builds the Google consent page URL carrying the given state.
	LoginURL(ctx context.Context, state string) string
	// ExchangeCode trades the authorization code for an OAuth token.
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	// FetchUserInfo loads the Google profile behind the token.
	FetchUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
}
