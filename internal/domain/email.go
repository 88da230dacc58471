package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// InvitationsIssuedEmailData holds data for the issued codes summary sent to the graduate.
type InvitationsIssuedEmailData struct {
	Email        string
	GraduateName string
	Invitations  []*Invitation
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendInvitationsIssued(ctx context.Context, data *InvitationsIssuedEmailData) error
}
