package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"gradinvite/internal/domain"
)

const eventColumns = `id, name, degree, department, graduation_at, venue_name, venue_address, venue_parking,
		invitation_template, contact_email, contact_phone, photo_urls, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var parkingNull, templateNull sql.NullString
	var photos pq.StringArray
	err := row.Scan(
		&e.ID, &e.Name, &e.Degree, &e.Department, &e.GraduationAt,
		&e.Venue.Name, &e.Venue.Address, &parkingNull,
		&templateNull, &e.Contact.Email, &e.Contact.Phone, &photos,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if parkingNull.Valid {
		e.Venue.Parking = &parkingNull.String
	}
	if templateNull.Valid {
		e.InvitationTemplate = &templateNull.String
	}
	e.PhotoURLs = []string(photos)
	if e.PhotoURLs == nil {
		e.PhotoURLs = []string{}
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Name, e.Degree, e.Department, e.GraduationAt,
		e.Venue.Name, e.Venue.Address, e.Venue.Parking,
		e.InvitationTemplate, e.Contact.Email, e.Contact.Phone, pq.Array(e.PhotoURLs),
		e.CreatedAt, e.UpdatedAt,
	)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE id = $1
	`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events SET
			name = $2, degree = $3, department = $4, graduation_at = $5,
			venue_name = $6, venue_address = $7, venue_parking = $8,
			invitation_template = $9, contact_email = $10, contact_phone = $11,
			photo_urls = $12, updated_at = $13
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Name, e.Degree, e.Department, e.GraduationAt,
		e.Venue.Name, e.Venue.Address, e.Venue.Parking,
		e.InvitationTemplate, e.Contact.Email, e.Contact.Phone, pq.Array(e.PhotoURLs),
		e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
