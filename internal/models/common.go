package models

import "time"

// Timestamps holds the standard created_at/updated_at columns.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
