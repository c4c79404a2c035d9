package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portssvc "github.com/tesorapp/tesoreria_backend/internal/core/ports/services"
	"github.com/tesorapp/tesoreria_backend/internal/dto"
	"github.com/tesorapp/tesoreria_backend/internal/middleware"
	"github.com/tesorapp/tesoreria_backend/internal/platform/config"
)

// oauthStateCookie carries the CSRF state between the redirect to Google and
// the callback.
const oauthStateCookie = "oauthstate"

// authHandler handles registration, login and token rotation.
type authHandler struct {
	authService   portssvc.AuthSvcFacade
	googleService portssvc.GoogleOAuthSvcFacade
	cfg           *config.Config
}

func newAuthHandler(as portssvc.AuthSvcFacade, gs portssvc.GoogleOAuthSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{authService: as, googleService: gs, cfg: cfg}
}

// registerAuthRoutes sets up the public authentication routes with per-IP
// rate limiting.
func registerAuthRoutes(r *gin.Engine, cfg *config.Config, authService portssvc.AuthSvcFacade, googleService portssvc.GoogleOAuthSvcFacade) {
	h := newAuthHandler(authService, googleService, cfg)

	rate, _ := limiter.NewRateFromFormatted("10-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.GET("/invitations/:token", limitMiddleware, h.verifyInvitation)
		auth.POST("/register", limitMiddleware, h.register)
		auth.POST("/login", limitMiddleware, h.login)
		auth.POST("/google", limitMiddleware, h.loginWithGoogle)
		auth.GET("/google/login", limitMiddleware, h.googleLoginRedirect)
		auth.GET("/google/callback", h.googleCallback)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", middleware.AuthMiddleware(cfg.JWTSecret), h.logout)
	}
}

// setRefreshCookie stores the refresh token in an HTTP-only cookie scoped to
// the auth routes.
func (h *authHandler) setRefreshCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, token, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

func (h *authHandler) respondAuth(c *gin.Context, status int, result *portssvc.AuthResult) {
	h.setRefreshCookie(c, result.RefreshToken, int(h.cfg.RefreshTokenExpiryDuration.Seconds()))
	c.JSON(status, dto.LoginResponse{
		AccessToken: result.AccessToken,
		ExpiresAt:   result.AccessExpiresAt,
		User:        dto.ToUserResponse(result.User),
	})
}

// verifyInvitation godoc
// @Summary Verify an invitation token
// @Description Checks an invitation without consuming it, for prefilling the registration form.
// @Tags auth
// @Produce json
// @Param token path string true "Invitation token"
// @Success 200 {object} dto.VerifyInvitationResponse
// @Failure 400 {object} ErrorResponse "Invalid, expired or used invitation"
// @Router /auth/invitations/{token} [get]
func (h *authHandler) verifyInvitation(c *gin.Context) {
	invitation, err := h.authService.VerifyInvitation(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondServiceError(c, err, "Failed to verify invitation")
		return
	}

	c.JSON(http.StatusOK, dto.VerifyInvitationResponse{
		Email:     invitation.Email,
		Role:      string(invitation.Role),
		ExpiresAt: invitation.ExpiresAt,
	})
}

// register godoc
// @Summary Register with an invitation
// @Description Creates a new member from a valid invitation token and logs them in.
// @Tags auth
// @Accept json
// @Produce json
// @Param registration body dto.RegisterUserRequest true "Registration details"
// @Success 201 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "Invalid input or unusable invitation"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to register")
		return
	}

	logger.Info("User registered", slog.String("new_user_id", result.User.UserID))
	h.respondAuth(c, http.StatusCreated, result)
}

// login godoc
// @Summary User login
// @Description Authenticates with email and password and returns an access token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to log in")
		return
	}

	h.respondAuth(c, http.StatusOK, result)
}

// loginWithGoogle godoc
// @Summary Login with Google
// @Description Authenticates an existing member with a verified Google ID token.
// @Tags auth
// @Accept json
// @Produce json
// @Param token body dto.GoogleLoginRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Email has no membership"
// @Router /auth/google [post]
func (h *authHandler) loginWithGoogle(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.authService.LoginWithGoogle(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to log in with Google")
		return
	}

	h.respondAuth(c, http.StatusOK, result)
}

// googleLoginRedirect godoc
// @Summary Start Google login
// @Description Redirects the browser to the Google consent page. The CSRF state is kept in a short-lived cookie.
// @Tags auth
// @Success 307
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *authHandler) googleLoginRedirect(c *gin.Context) {
	state, err := h.googleService.GenerateStateString(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to start Google login")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, 600, "/api/v1/auth", "", h.cfg.IsProduction, true)
	c.Redirect(http.StatusTemporaryRedirect, h.googleService.LoginURL(c.Request.Context(), state))
}

// googleCallback godoc
// @Summary Google login callback
// @Description Exchanges the authorization code for a session. Only existing members can log in.
// @Tags auth
// @Produce json
// @Param state query string true "CSRF state"
// @Param code query string true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Email has no membership"
// @Router /auth/google/callback [get]
func (h *authHandler) googleCallback(c *gin.Context) {
	storedState, err := c.Cookie(oauthStateCookie)
	if err != nil || storedState == "" || c.Query("state") != storedState {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/api/v1/auth", "", h.cfg.IsProduction, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing authorization code"})
		return
	}

	token, err := h.googleService.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Failed to exchange authorization code"})
		return
	}

	info, err := h.googleService.FetchUserInfo(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Failed to load Google profile"})
		return
	}
	if !info.VerifiedEmail || info.Email == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google account email is not verified"})
		return
	}

	result, err := h.authService.LoginWithGoogleProfile(c.Request.Context(), info.Email, info.Picture)
	if err != nil {
		respondServiceError(c, err, "Failed to log in with Google")
		return
	}

	h.respondAuth(c, http.StatusOK, result)
}

// refresh godoc
// @Summary Rotate tokens
// @Description Exchanges the refresh token cookie for a new token pair.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.RefreshResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(h.cfg.RefreshTokenCookieName)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token missing"})
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.setRefreshCookie(c, "", -1)
		respondServiceError(c, err, "Failed to refresh token")
		return
	}

	h.setRefreshCookie(c, result.RefreshToken, int(h.cfg.RefreshTokenExpiryDuration.Seconds()))
	c.JSON(http.StatusOK, dto.RefreshResponse{
		AccessToken: result.AccessToken,
		ExpiresAt:   result.AccessExpiresAt,
	})
}

// logout godoc
// @Summary Logout
// @Description Invalidates the current refresh token.
// @Tags auth
// @Produce json
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err, "Failed to log out")
		return
	}

	h.setRefreshCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}
