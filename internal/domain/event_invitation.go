package domain

import (
	"context"
	"time"
)

// Invitation is a six digit code granting a named guest lookup access to one
// event record. It is never modified after it has been stored.
// swagger:model Invitation
type Invitation struct {
	Code      string    `json:"code" bson:"code"`
	EventID   string    `json:"event_id" bson:"event_id"`
	GuestName string    `json:"guest_name" bson:"guest_name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// CodeGenerator returns a random candidate invitation code.
type CodeGenerator func() string

// InvitationRepository defines storage operations for invitations.
// Create must return ErrDuplicateCode when the code is already stored;
// that check is the only place uniqueness is decided under concurrency.
type InvitationRepository interface {
	Create(ctx context.Context, inv *Invitation) error
	GetByCode(ctx context.Context, code string) (*Invitation, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Invitation, error)
	List(ctx context.Context) ([]*Invitation, error)
}

// InvitationService issues, redeems and lists invitation codes.
type InvitationService interface {
	IssueInvitations(ctx context.Context, eventID string, guestNames []string) ([]*Invitation, error)
	Redeem(ctx context.Context, code string) (*Invitation, error)
	VerifyInvitation(ctx context.Context, code string) (*Invitation, *Event, error)
	ListInvitations(ctx context.Context, eventID string) ([]*Invitation, error)
}
