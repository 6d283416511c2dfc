package notifications

import (
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridEmailSender delivers email through the SendGrid v3 API.
type SendGridEmailSender struct {
	client    *sendgrid.Client
	apiKey    string
	fromEmail string
	fromName  string
}

// NewSendGridEmailSender creates a new SendGrid email sender
func NewSendGridEmailSender(apiKey, fromEmail, fromName string) *SendGridEmailSender {
	return &SendGridEmailSender{
		client:    sendgrid.NewSendClient(apiKey),
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// SendEmail sends an HTML email
func (s *SendGridEmailSender) SendEmail(to, subject, body string) error {
	// If credentials are not configured, log instead of sending
	if s.apiKey == "" {
		fmt.Printf("[MOCK EMAIL] To: %s, Subject: %s\n", to, subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), "", body)

	resp, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid rejected message: status %d", resp.StatusCode)
	}

	return nil
}
