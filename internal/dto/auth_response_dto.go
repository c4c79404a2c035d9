package dto

import "time"

// LoginResponse carries the access token issued after a successful login.
// The refresh token travels separately in an HTTP-only cookie.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

// RefreshResponse carries the rotated access token.
type RefreshResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
