package notifications

import "github.com/you/mobileauthsvc/domain"

// Gateway composes the per-channel senders into the delivery interface the
// core consumes.
type Gateway struct {
	sms   *TwilioSMSSender
	email *SendGridEmailSender
}

// NewGateway creates a delivery gateway from configured senders
func NewGateway(sms *TwilioSMSSender, email *SendGridEmailSender) domain.DeliveryGateway {
	return &Gateway{sms: sms, email: email}
}

// SendSMS implements domain.DeliveryGateway
func (g *Gateway) SendSMS(to, message string) error {
	return g.sms.SendSMS(to, message)
}

// SendEmail implements domain.DeliveryGateway
func (g *Gateway) SendEmail(to, subject, body string) error {
	return g.email.SendEmail(to, subject, body)
}

// Compile-time interface compliance verification
var _ domain.DeliveryGateway = (*Gateway)(nil)
