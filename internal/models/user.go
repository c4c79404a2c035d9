package models

import "database/sql"

// User is the users table row.
type User struct {
	UserID       string `db:"user_id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	FirstName    string `db:"first_name"`
	LastName     string `db:"last_name"`
	Role         string `db:"role"`
	IsActive     bool   `db:"is_active"`
	AvatarURL    string `db:"avatar_url"`
	Timestamps

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
