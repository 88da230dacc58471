package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gradinvite/internal/domain"
)

// DefaultMaxCodeAttempts bounds how many candidates are tried for one guest
// before issuance gives up with domain.ErrCapacityExhausted.
const DefaultMaxCodeAttempts = 20

type invitationService struct {
	invitationRepo domain.InvitationRepository
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	generate       domain.CodeGenerator
	maxAttempts    int
	contextTimeout time.Duration
	logger         *slog.Logger
	now            func() time.Time
}

// NewInvitationService creates an InvitationService. A nil generator falls
// back to six digit codes and a non-positive maxAttempts to
// DefaultMaxCodeAttempts. emailService may be nil to skip notifications.
func NewInvitationService(
	invitationRepo domain.InvitationRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	generate domain.CodeGenerator,
	maxAttempts int,
	timeout time.Duration,
	logger *slog.Logger,
) domain.InvitationService {
	if generate == nil {
		generate = NewDigitCodeGenerator(InvitationCodeLength)
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxCodeAttempts
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &invitationService{
		invitationRepo: invitationRepo,
		eventRepo:      eventRepo,
		emailService:   emailService,
		generate:       generate,
		maxAttempts:    maxAttempts,
		contextTimeout: timeout,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *invitationService) IssueInvitations(ctx context.Context, eventID string, guestNames []string) ([]*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	names := make([]string, 0, len(guestNames))
	for i, name := range guestNames {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: guest name %d is empty", domain.ErrInvalidInput, i)
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: at least one guest name is required", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w: %w", domain.ErrStorageUnavailable, err)
	}

	invs, err := s.issueBatch(ctx, event.ID, names)
	if err != nil {
		return nil, err
	}
	s.notifyContact(ctx, event, invs)
	return invs, nil
}

// issueBatch mints one invitation per guest name, in order. Each code is
// stored as soon as it is accepted, so a failure part way leaves the earlier
// ones in place; they are reported through *domain.BatchError.
func (s *invitationService) issueBatch(ctx context.Context, eventID string, guestNames []string) ([]*domain.Invitation, error) {
	if len(guestNames) == 0 {
		return nil, fmt.Errorf("%w: at least one guest name is required", domain.ErrInvalidInput)
	}
	issued := make([]*domain.Invitation, 0, len(guestNames))
	for _, name := range guestNames {
		inv, err := s.issueOne(ctx, eventID, name)
		if err != nil {
			return nil, &domain.BatchError{Issued: issued, Err: err}
		}
		issued = append(issued, inv)
	}
	return issued, nil
}

func (s *invitationService) issueOne(ctx context.Context, eventID, guestName string) (*domain.Invitation, error) {
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("issue invitation: %w: %w", domain.ErrStorageUnavailable, err)
		}
		code := s.generate()

		_, err := s.invitationRepo.GetByCode(ctx, code)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("look up code: %w: %w", domain.ErrStorageUnavailable, err)
		}

		inv := &domain.Invitation{
			Code:      code,
			EventID:   eventID,
			GuestName: guestName,
			CreatedAt: s.now().UTC(),
		}
		// Another writer may have taken the code since the lookup; the store
		// rejects it and we draw again.
		if err := s.invitationRepo.Create(ctx, inv); err != nil {
			if errors.Is(err, domain.ErrDuplicateCode) {
				continue
			}
			return nil, fmt.Errorf("store invitation: %w: %w", domain.ErrStorageUnavailable, err)
		}
		return inv, nil
	}
	return nil, fmt.Errorf("%w: no free code after %d attempts", domain.ErrCapacityExhausted, s.maxAttempts)
}

func (s *invitationService) notifyContact(ctx context.Context, event *domain.Event, invs []*domain.Invitation) {
	if s.emailService == nil || event.Contact.Email == "" {
		return
	}
	data := &domain.InvitationsIssuedEmailData{
		Email:        event.Contact.Email,
		GraduateName: event.Name,
		Invitations:  invs,
	}
	if err := s.emailService.SendInvitationsIssued(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "invitation summary email failed", "event_id", event.ID, "err", err)
	}
}

// Redeem resolves a code to its invitation. Lookups never change the stored
// invitation, so the same code can be redeemed any number of times.
func (s *invitationService) Redeem(ctx context.Context, code string) (*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	inv, err := s.invitationRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get invitation: %w: %w", domain.ErrStorageUnavailable, err)
	}
	return inv, nil
}

func (s *invitationService) VerifyInvitation(ctx context.Context, code string) (*domain.Invitation, *domain.Event, error) {
	inv, err := s.Redeem(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrUnauthorized
		}
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, inv.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return inv, nil, domain.ErrNotFound
		}
		return inv, nil, fmt.Errorf("get event: %w: %w", domain.ErrStorageUnavailable, err)
	}
	return inv, event, nil
}

func (s *invitationService) ListInvitations(ctx context.Context, eventID string) ([]*domain.Invitation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	var (
		invs []*domain.Invitation
		err  error
	)
	if eventID == "" {
		invs, err = s.invitationRepo.List(ctx)
	} else {
		invs, err = s.invitationRepo.ListByEventID(ctx, eventID)
	}
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w: %w", domain.ErrStorageUnavailable, err)
	}
	if invs == nil {
		invs = []*domain.Invitation{}
	}
	return invs, nil
}
