package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	h "gradinvite/internal/delivery/http/helpers"
	"gradinvite/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *h.APIError     `json:"error"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

func sampleEvent(id string) *domain.Event {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return &domain.Event{
		ID:           id,
		Name:         "Nguyen Van A",
		Degree:       "Bachelor of Science",
		Department:   "Computer Science",
		GraduationAt: time.Date(2025, 6, 20, 9, 0, 0, 0, time.UTC),
		Venue:        domain.Venue{Name: "Main Hall", Address: "1 University Ave"},
		Contact:      domain.Contact{Email: "a@example.com", Phone: "0900000000"},
		PhotoURLs:    []string{},
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	err         error
	events      map[string]*domain.Event
	lastCreated *domain.Event
	lastPatchID string
	lastPatch   domain.EventPatch
}

func (f *fakeEventService) CreateEvent(_ context.Context, event *domain.Event) error {
	f.lastCreated = event
	if f.err != nil {
		return f.err
	}
	event.ID = "ev-created"
	return nil
}

func (f *fakeEventService) GetEvent(_ context.Context, id string) (*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	if e, ok := f.events[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) ListEvents(_ context.Context) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []*domain.Event{}
	for _, e := range f.events {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventService) UpdateEvent(_ context.Context, id string, patch domain.EventPatch) (*domain.Event, error) {
	f.lastPatchID = id
	f.lastPatch = patch
	if f.err != nil {
		return nil, f.err
	}
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	patch.Apply(e)
	return e, nil
}

// fakeInvitationService implements domain.InvitationService for handler tests.
type fakeInvitationService struct {
	issueResult   []*domain.Invitation
	issueErr      error
	verifyInv     *domain.Invitation
	verifyEvent   *domain.Event
	verifyErr     error
	listResult    []*domain.Invitation
	listErr       error
	lastEventID   string
	lastNames     []string
	lastCode      string
	lastListEvent string
}

func (f *fakeInvitationService) IssueInvitations(_ context.Context, eventID string, names []string) ([]*domain.Invitation, error) {
	f.lastEventID = eventID
	f.lastNames = names
	return f.issueResult, f.issueErr
}

func (f *fakeInvitationService) Redeem(_ context.Context, code string) (*domain.Invitation, error) {
	f.lastCode = code
	return f.verifyInv, f.verifyErr
}

func (f *fakeInvitationService) VerifyInvitation(_ context.Context, code string) (*domain.Invitation, *domain.Event, error) {
	f.lastCode = code
	return f.verifyInv, f.verifyEvent, f.verifyErr
}

func (f *fakeInvitationService) ListInvitations(_ context.Context, eventID string) ([]*domain.Invitation, error) {
	f.lastListEvent = eventID
	return f.listResult, f.listErr
}

type fakeChatService struct {
	reply       string
	err         error
	lastEventID string
	lastMessage string
}

func (f *fakeChatService) Chat(_ context.Context, eventID, message string) (string, error) {
	f.lastEventID = eventID
	f.lastMessage = message
	return f.reply, f.err
}

type fakeAuthService struct {
	token        string
	err          error
	lastPassword string
}

func (f *fakeAuthService) Login(_ context.Context, password string) (string, error) {
	f.lastPassword = password
	return f.token, f.err
}
