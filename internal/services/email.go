package services

import (
	"context"
	"fmt"
	"log/slog"

	"gradinvite/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	if logger == nil {
		logger = slog.Default()
	}
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendInvitationsIssued mails the graduate the codes that were just issued,
// using the "invitations_issued" template.
func (s *emailService) SendInvitationsIssued(ctx context.Context, data *domain.InvitationsIssuedEmailData) error {
	if data == nil {
		return fmt.Errorf("invitations issued data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("invitations_issued", data)
	if err != nil {
		return fmt.Errorf("failed to render invitations_issued template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send invitations issued email: %w", err)
	}
	s.logger.InfoContext(ctx, "invitations issued email sent", "to", data.Email, "count", len(data.Invitations))
	return nil
}
