package mailer

import (
	"context"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendResult struct {
	Success   bool
	MessageID string
	Error     string
}

// Mailer is the outbound email collaborator of the alert engine. A Mailer
// that is not configured is a deliberate no-op, not an error.
type Mailer interface {
	Send(ctx context.Context, to string, subject string, html string) (*SendResult, error)
	IsConfigured() bool
}

type SendGridMailer struct {
	apiKey    string
	fromName  string
	fromEmail string
}

func NewSendGridMailer(apiKey, fromName, fromEmail string) *SendGridMailer {
	return &SendGridMailer{
		apiKey:    apiKey,
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (s *SendGridMailer) IsConfigured() bool {
	return s.apiKey != "" && s.fromEmail != ""
}

func (s *SendGridMailer) Send(ctx context.Context, to string, subject string, html string) (*SendResult, error) {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, html, html)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.SendWithContext(ctx, message)
	if err != nil {
		return &SendResult{Success: false, Error: err.Error()}, nil
	}

	if response.StatusCode >= 400 {
		return &SendResult{Success: false, Error: response.Body}, nil
	}

	var messageID string
	if ids, ok := response.Headers["X-Message-Id"]; ok && len(ids) > 0 {
		messageID = ids[0]
	}

	return &SendResult{Success: true, MessageID: messageID}, nil
}
