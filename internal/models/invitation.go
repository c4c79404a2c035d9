package models

import "time"

// Invitation is the invitations table row.
type Invitation struct {
	InvitationID string    `db:"invitation_id"`
	Email        string    `db:"email"`
	Role         string    `db:"role"`
	Token        string    `db:"token"`
	InvitedBy    string    `db:"invited_by"`
	Used         bool      `db:"used"`
	ExpiresAt    time.Time `db:"expires_at"`
	CreatedAt    time.Time `db:"created_at"`
}
