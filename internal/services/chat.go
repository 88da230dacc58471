package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"gradinvite/internal/domain"
)

var systemPromptTemplate = template.Must(template.New("system_prompt").Parse(
	`You are an assistant for the graduation ceremony of {{.Name}}.

Event details:
- Graduate: {{.Name}}
- Degree: {{.Degree}}
- Department: {{.Department}}
- Time: {{.Time}}
- Venue: {{.Venue}}
- Address: {{.Address}}
- Parking: {{.Parking}}
- Contact email: {{.Email}}
- Phone: {{.Phone}}

Only answer questions about this graduation ceremony. If the guest asks about anything else,
politely decline and ask them to ask about the ceremony.

Reply in Vietnamese, in a friendly and professional tone.`))

type promptData struct {
	Name, Degree, Department, Time, Venue, Address, Parking, Email, Phone string
}

type chatService struct {
	eventRepo      domain.EventRepository
	completer      domain.ChatCompleter
	contextTimeout time.Duration
}

// NewChatService returns a ChatService backed by completer. A nil completer
// makes every chat fail with domain.ErrChatNotConfigured.
func NewChatService(eventRepo domain.EventRepository, completer domain.ChatCompleter, timeout time.Duration) domain.ChatService {
	return &chatService{
		eventRepo:      eventRepo,
		completer:      completer,
		contextTimeout: timeout,
	}
}

func (s *chatService) Chat(ctx context.Context, eventID, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("get event: %w: %w", domain.ErrStorageUnavailable, err)
	}
	if s.completer == nil {
		return "", domain.ErrChatNotConfigured
	}

	prompt, err := buildSystemPrompt(event)
	if err != nil {
		return "", err
	}
	reply, err := s.completer.Complete(ctx, []domain.ChatMessage{
		{Role: domain.ChatRoleSystem, Content: prompt},
		{Role: domain.ChatRoleUser, Content: message},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrChatUnavailable, err)
	}
	return reply, nil
}

func buildSystemPrompt(e *domain.Event) (string, error) {
	parking := "not yet announced"
	if e.Venue.Parking != nil && strings.TrimSpace(*e.Venue.Parking) != "" {
		parking = *e.Venue.Parking
	}
	data := promptData{
		Name:       orNA(e.Name),
		Degree:     orNA(e.Degree),
		Department: orNA(e.Department),
		Time:       e.GraduationAt.Format(time.RFC3339),
		Venue:      orNA(e.Venue.Name),
		Address:    orNA(e.Venue.Address),
		Parking:    parking,
		Email:      orNA(e.Contact.Email),
		Phone:      orNA(e.Contact.Phone),
	}
	var buf bytes.Buffer
	if err := systemPromptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render system prompt: %w", err)
	}
	return buf.String(), nil
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
