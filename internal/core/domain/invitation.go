package domain

import "time"

// Invitation grants an email address the right to register with a given role.
// Registration consumes the invitation; unused invitations expire.
type Invitation struct {
	InvitationID string    `json:"invitationID"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Token        string    `json:"token"`
	InvitedBy    string    `json:"invitedBy"`
	Used         bool      `json:"used"`
	ExpiresAt    time.Time `json:"expiresAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsUsable reports whether the invitation can still be redeemed at the given time.
func (i Invitation) IsUsable(now time.Time) bool {
	return !i.Used && now.Before(i.ExpiresAt)
}
