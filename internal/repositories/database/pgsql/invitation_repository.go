package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tesorapp/tesoreria_backend/internal/apperrors"
	"github.com/tesorapp/tesoreria_backend/internal/core/domain"
	portsrepo "github.com/tesorapp/tesoreria_backend/internal/core/ports/repositories"
	"github.com/tesorapp/tesoreria_backend/internal/models"
	"github.com/tesorapp/tesoreria_backend/internal/utils/mapping"
)

type PgxInvitationRepository struct {
	BaseRepository
}

// newPgxInvitationRepository creates a new repository for invitation data.
func newPgxInvitationRepository(pool *pgxpool.Pool) portsrepo.InvitationRepository {
	return &PgxInvitationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvitationRepository = (*PgxInvitationRepository)(nil)

const invitationColumns = `invitation_id, email, role, token, invited_by, used, expires_at, created_at`

func scanInvitationRow(row pgx.Row) (models.Invitation, error) {
	var m models.Invitation
	err := row.Scan(
		&m.InvitationID, &m.Email, &m.Role, &m.Token,
		&m.InvitedBy, &m.Used, &m.ExpiresAt, &m.CreatedAt,
	)
	return m, err
}

// CreateInvitation inserts a new invitation row.
func (r *PgxInvitationRepository) CreateInvitation(ctx context.Context, invitation *domain.Invitation) error {
	m := mapping.ToModelInvitation(*invitation)

	query := `
		INSERT INTO invitations (` + invitationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.InvitationID, m.Email, m.Role, m.Token,
		m.InvitedBy, m.Used, m.ExpiresAt, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invitation %s: %w", m.InvitationID, translateConstraintError(err))
	}
	return nil
}

// GetInvitationByToken retrieves an invitation by its opaque token.
func (r *PgxInvitationRepository) GetInvitationByToken(ctx context.Context, token string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE token = $1;`

	m, err := scanInvitationRow(r.Pool.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invitation by token: %w", err)
	}
	invitation := mapping.ToDomainInvitation(m)
	return &invitation, nil
}

// ListInvitations retrieves every invitation, newest first.
func (r *PgxInvitationRepository) ListInvitations(ctx context.Context) ([]domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations ORDER BY created_at DESC;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query invitations: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Invitation, error) {
		return scanInvitationRow(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan invitations: %w", err)
	}

	invitations := make([]domain.Invitation, len(ms))
	for i, m := range ms {
		invitations[i] = mapping.ToDomainInvitation(m)
	}
	return invitations, nil
}

// MarkInvitationUsed consumes an invitation. Already used invitations are
// reported as a conflict so registration cannot double-spend a token.
func (r *PgxInvitationRepository) MarkInvitationUsed(ctx context.Context, invitationID string) error {
	query := `UPDATE invitations SET used = TRUE WHERE invitation_id = $1 AND NOT used;`

	tag, err := r.Pool.Exec(ctx, query, invitationID)
	if err != nil {
		return fmt.Errorf("failed to mark invitation %s used: %w", invitationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// DeleteInvitation removes an invitation row.
func (r *PgxInvitationRepository) DeleteInvitation(ctx context.Context, invitationID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM invitations WHERE invitation_id = $1;`, invitationID)
	if err != nil {
		return fmt.Errorf("failed to delete invitation %s: %w", invitationID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
