package domain

import (
	"context"
	"time"
)

// Venue is where the graduation ceremony takes place.
type Venue struct {
	Name    string  `json:"name" bson:"name"`
	Address string  `json:"address" bson:"address"`
	Parking *string `json:"parking,omitempty" bson:"parking,omitempty"`
}

// Contact is how guests reach the graduate.
type Contact struct {
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone" bson:"phone"`
}

// Event is a graduation event record. Invitations reference it by ID.
// swagger:model Event
type Event struct {
	ID                 string    `json:"id" bson:"_id"`
	Name               string    `json:"name" bson:"name"`
	Degree             string    `json:"degree" bson:"degree"`
	Department         string    `json:"department" bson:"department"`
	GraduationAt       time.Time `json:"graduation_at" bson:"graduation_at"`
	Venue              Venue     `json:"venue" bson:"venue"`
	InvitationTemplate *string   `json:"invitation_template,omitempty" bson:"invitation_template,omitempty"`
	Contact            Contact   `json:"contact" bson:"contact"`
	PhotoURLs          []string  `json:"photo_urls" bson:"photo_urls"`
	CreatedAt          time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" bson:"updated_at"`
}

// Clone returns a deep copy of e. The photo list and the optional fields
// are not shared with e.
func (e *Event) Clone() *Event {
	cp := *e
	if e.PhotoURLs != nil {
		cp.PhotoURLs = append([]string(nil), e.PhotoURLs...)
	}
	if e.Venue.Parking != nil {
		parking := *e.Venue.Parking
		cp.Venue.Parking = &parking
	}
	if e.InvitationTemplate != nil {
		tmpl := *e.InvitationTemplate
		cp.InvitationTemplate = &tmpl
	}
	return &cp
}

// EventPatch carries a partial update. Nil fields are left unchanged.
type EventPatch struct {
	Name               *string
	Degree             *string
	Department         *string
	GraduationAt       *time.Time
	Venue              *Venue
	InvitationTemplate *string
	Contact            *Contact
	PhotoURLs          []string
}

// Empty reports whether the patch changes nothing.
func (p EventPatch) Empty() bool {
	return p.Name == nil && p.Degree == nil && p.Department == nil && p.GraduationAt == nil &&
		p.Venue == nil && p.InvitationTemplate == nil && p.Contact == nil && p.PhotoURLs == nil
}

// Apply copies the set fields of p onto e.
func (p EventPatch) Apply(e *Event) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Degree != nil {
		e.Degree = *p.Degree
	}
	if p.Department != nil {
		e.Department = *p.Department
	}
	if p.GraduationAt != nil {
		e.GraduationAt = *p.GraduationAt
	}
	if p.Venue != nil {
		e.Venue = *p.Venue
	}
	if p.InvitationTemplate != nil {
		e.InvitationTemplate = p.InvitationTemplate
	}
	if p.Contact != nil {
		e.Contact = *p.Contact
	}
	if p.PhotoURLs != nil {
		e.PhotoURLs = p.PhotoURLs
	}
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
}

// EventService defines the business logic for graduation event records.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	UpdateEvent(ctx context.Context, id string, patch EventPatch) (*Event, error)
}
