package domain

import "time"

// Role defines what a user is allowed to do in the organization.
type Role string

const (
	RoleAdministrator   Role = "administrator"
	RoleTreasurer       Role = "treasurer"
	RolePurchaseManager Role = "purchase_manager"
)

// IsValid reports whether the role is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdministrator, RoleTreasurer, RolePurchaseManager:
		return true
	}
	return false
}

// CanReviewPurchases reports whether the role may approve or reject purchases.
func (r Role) CanReviewPurchases() bool {
	return r == RoleAdministrator || r == RoleTreasurer
}

// CanRecordIncome reports whether the role may create, edit or delete income records.
func (r Role) CanRecordIncome() bool {
	return r == RoleAdministrator || r == RoleTreasurer
}

// CanManageUsers reports whether the role may administer users and invitations.
func (r Role) CanManageUsers() bool {
	return r == RoleAdministrator
}

// User represents a member of the organization.
type User struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         Role   `json:"role"`
	IsActive     bool   `json:"isActive"`
	AvatarURL    string `json:"avatarURL,omitempty"`
	Timestamps

	// Refresh token state, unset until the user logs in.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GoogleUserInfo is the profile Google's userinfo endpoint returns for an
// OAuth access token.
type GoogleUserInfo struct {
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

// FullName returns the display name of the user.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
