package mocks

import (
	"sync"

	"github.com/you/mobileauthsvc/domain"
)

// SentMessage records one delivery attempt observed by the mock gateway
type SentMessage struct {
	To      string
	Subject string
	Body    string
	Channel string // "sms" or "email"
}

// MockDeliveryGateway implements domain.DeliveryGateway for testing and
// records every delivery attempt.
type MockDeliveryGateway struct {
	SendSMSFunc   func(to, message string) error
	SendEmailFunc func(to, subject, body string) error

	mu   sync.Mutex
	sent []SentMessage
}

// NewMockDeliveryGateway creates a new MockDeliveryGateway with default behaviors
func NewMockDeliveryGateway() *MockDeliveryGateway {
	return &MockDeliveryGateway{}
}

func (m *MockDeliveryGateway) SendSMS(to, message string) error {
	m.record(SentMessage{To: to, Body: message, Channel: "sms"})
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	return nil
}

func (m *MockDeliveryGateway) SendEmail(to, subject, body string) error {
	m.record(SentMessage{To: to, Subject: subject, Body: body, Channel: "email"})
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	return nil
}

func (m *MockDeliveryGateway) record(msg SentMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
}

// Sent returns a copy of all recorded delivery attempts
func (m *MockDeliveryGateway) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}

// Compile-time interface compliance verification
var _ domain.DeliveryGateway = (*MockDeliveryGateway)(nil)
