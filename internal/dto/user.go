package dto

import (
	"time"

	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
)

// RegisterUserRequest defines the payload to register with an invitation
// token.
type RegisterUserRequest struct {
	InvitationToken string `json:"invitationToken" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName"`
}

// LoginRequest defines the email/password login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries the Google ID token obtained by the frontend.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// UpdateUserRoleRequest changes a user's role.
type UpdateUserRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=administrator treasurer purchase_manager"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID    string    `json:"userID"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	AvatarURL string    `json:"avatarURL,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListUsersResponse wraps the user list.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToUserResponse converts a domain.User to UserResponse.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses converts a slice of domain users.
func ToUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i := range users {
		out[i] = ToUserResponse(&users[i])
	}
	return out
}
