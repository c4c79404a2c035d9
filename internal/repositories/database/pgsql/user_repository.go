package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tesorapp/tesoreria_backend/internal/apperrors"
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/tesorapp/tesoreria_backend/internal/core/ports/repositories"
	"github.com/tesorapp/tesoreria_backend/internal/models"
	"github.com/tesorapp/tesoreria_backend/internal/utils/mapping"
)

type PgxUserRepository struct {
	BaseRepository
}

// newPgxUserRepository creates a new repository for user data.
func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepository {
	return &PgxUserRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.UserRepository = (*PgxUserRepository)(nil)

const userColumns = `user_id, email, password_hash, first_name, last_name, role, is_active, avatar_url, refresh_token_hash, refresh_token_expiry_time, created_at, updated_at`

func scanUserRow(row pgx.Row) (models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID, &m.Email, &m.PasswordHash, &m.FirstName, &m.LastName,
		&m.Role, &m.IsActive, &m.AvatarURL,
		&m.RefreshTokenHash, &m.RefreshTokenExpiryTime,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// CreateUser inserts a new user row.
func (r *PgxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	m := mapping.ToModelUser(*user)

	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Email, m.PasswordHash, m.FirstName, m.LastName,
		m.Role, m.IsActive, m.AvatarURL,
		m.RefreshTokenHash, m.RefreshTokenExpiryTime,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user %s: %w", m.UserID, translateConstraintError(err))
	}
	return nil
}

// GetUserByID retrieves a single user.
func (r *PgxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`

	m, err := scanUserRow(r.Pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// GetUserByEmail retrieves a single user by email.
func (r *PgxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`

	m, err := scanUserRow(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// ListUsers retrieves every user ordered by creation time.
func (r *PgxUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.User, error) {
		return scanUserRow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan users: %w", err)
	}

	users := make([]domain.User, len(ms))
	for i, m := range ms {
		users[i] = mapping.ToDomainUser(m)
	}
	return users, nil
}

// UpdateUserRole changes a user's role and returns the stored row.
func (r *PgxUserRepository) UpdateUserRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	query := `
		UPDATE users SET role = $2, updated_at = now()
		WHERE user_id = $1
		RETURNING ` + userColumns + `;
	`
	m, err := scanUserRow(r.Pool.QueryRow(ctx, query, userID, string(role)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update role for user %s: %w", userID, err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// SetUserActive flips the active flag in place and returns the stored row.
func (r *PgxUserRepository) SetUserActive(ctx context.Context, userID string, active bool) (*domain.User, error) {
	query := `
		UPDATE users SET is_active = $2, updated_at = now()
		WHERE user_id = $1
		RETURNING ` + userColumns + `;
	`
	m, err := scanUserRow(r.Pool.QueryRow(ctx, query, userID, active))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to toggle user %s: %w", userID, err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

// UpdateRefreshToken stores the hash of the user's refresh token. Nil clears
// it, invalidating the session.
func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash *string, expiresAt *time.Time) error {
	var hash sql.NullString
	var expiry sql.NullTime
	if refreshTokenHash != nil {
		hash = sql.NullString{String: *refreshTokenHash, Valid: true}
	}
	if expiresAt != nil {
		expiry = sql.NullTime{Time: *expiresAt, Valid: true}
	}

	query := `
		UPDATE users SET refresh_token_hash = $2, refresh_token_expiry_time = $3, updated_at = now()
		WHERE user_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, hash, expiry)
	if err != nil {
		return fmt.Errorf("failed to update refresh token for user %s: %w", userID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
