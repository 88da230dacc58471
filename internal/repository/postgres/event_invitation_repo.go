package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"gradinvite/internal/domain"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

type invitationRepository struct {
	DB *sql.DB
}

func NewInvitationRepository(db *sql.DB) domain.InvitationRepository {
	return &invitationRepository{
		DB: db,
	}
}

// Create inserts inv. A code that is already stored yields
// domain.ErrDuplicateCode, whether the row lost the race to ON CONFLICT or
// to the primary key.
func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `
		INSERT INTO invitations (code, event_id, guest_name, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO NOTHING
	`
	result, err := r.DB.ExecContext(ctx, query, inv.Code, inv.EventID, inv.GuestName, inv.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateCode
		}
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrDuplicateCode
	}
	return nil
}

func (r *invitationRepository) GetByCode(ctx context.Context, code string) (*domain.Invitation, error) {
	query := `
		SELECT code, event_id, guest_name, created_at
		FROM invitations
		WHERE code = $1
	`
	inv := &domain.Invitation{}
	err := r.DB.QueryRowContext(ctx, query, code).Scan(&inv.Code, &inv.EventID, &inv.GuestName, &inv.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return inv, nil
}

func (r *invitationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Invitation, error) {
	query := `
		SELECT code, event_id, guest_name, created_at
		FROM invitations
		WHERE event_id = $1
		ORDER BY created_at, code
	`
	return r.list(ctx, query, eventID)
}

func (r *invitationRepository) List(ctx context.Context) ([]*domain.Invitation, error) {
	query := `
		SELECT code, event_id, guest_name, created_at
		FROM invitations
		ORDER BY created_at, code
	`
	return r.list(ctx, query)
}

func (r *invitationRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Invitation, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invs []*domain.Invitation
	for rows.Next() {
		inv := &domain.Invitation{}
		if err := rows.Scan(&inv.Code, &inv.EventID, &inv.GuestName, &inv.CreatedAt); err != nil {
			return nil, err
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	return invs, nil
}
