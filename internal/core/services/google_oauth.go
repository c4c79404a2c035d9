package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portssvc "github.com/tesorapp/tesoreria_backend/internal/core/ports/services"
	"github.com/tesorapp/tesoreria_backend/internal/platform/config"
	"github.com/tesorapp/tesoreria_backend/internal/utils"
)

// GoogleOAuthService implements the server-side Google authorization code
// flow. It only talks to Google; turning the resulting profile into a session
// is the AuthService's job.
type GoogleOAuthService struct {
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthService creates the Google OAuth helper.
func NewGoogleOAuthService(cfg *config.Config) *GoogleOAuthService {
	return &GoogleOAuthService{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
	}
}

var _ portssvc.GoogleOAuthSvcFacade = (*GoogleOAuthService)(nil)

// GenerateStateString mints the CSRF state for one authorization round trip.
func (s *GoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate oauth state: %w", err)
	}
	return state, nil
}

// LoginURL builds the Google consent page URL carrying the given state.
func (s *GoogleOAuthService) LoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCode trades the authorization code for an OAuth token.
func (s *GoogleOAuthService) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}
	return token, nil
}

// FetchUserInfo loads the Google profile behind the token.
func (s *GoogleOAuthService) FetchUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	client := s.oauth2Config.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch google user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	var info domain.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode google user info: %w", err)
	}
	return &info, nil
}
