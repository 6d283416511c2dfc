package domain

import (
	"context"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Registration events
	RegistrationInitiatedEvent AuditEventType = "REGISTRATION_INITIATED"
	RegistrationVerifiedEvent  AuditEventType = "REGISTRATION_VERIFIED"
	RegistrationCompletedEvent AuditEventType = "REGISTRATION_COMPLETED"

	// Login events
	LoginInitiatedEvent AuditEventType = "LOGIN_INITIATED"
	LoginVerifiedEvent  AuditEventType = "LOGIN_VERIFIED"

	// Token events
	TokenRefreshedEvent   AuditEventType = "TOKEN_REFRESHED"
	TokenRefreshLostEvent AuditEventType = "TOKEN_REFRESH_RACE_LOST"
	UserLogoutEvent       AuditEventType = "USER_LOGOUT"
	UserLogoutAllEvent    AuditEventType = "USER_LOGOUT_ALL"

	// Delivery events
	DeliveryFailureEvent AuditEventType = "DELIVERY_FAILED"
)

// AuditEvent represents a business event that occurred in the subsystem
type AuditEvent struct {
	EventType  AuditEventType `json:"event_type"`
	UserID     string         `json:"user_id,omitempty"`
	Identifier string         `json:"identifier,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
	DeviceID   string         `json:"device_id,omitempty"`
	IPAddress  string         `json:"ip_address,omitempty"`
	UserAgent  string         `json:"user_agent,omitempty"`
	ErrorMsg   string         `json:"error_msg,omitempty"`
	Success    bool           `json:"success"`
}

// AuditLogger defines operations for audit logging
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent)
}

// NewAuditEvent creates a new audit event with common fields populated.
// The timestamp is left zero; the logger stamps it from its own clock.
func NewAuditEvent(eventType AuditEventType) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		Success:   true,
	}
}

// WithUser sets the owning identity id
func (e *AuditEvent) WithUser(userID string) *AuditEvent {
	e.UserID = userID
	return e
}

// WithIdentifier sets the identifier the event concerns
func (e *AuditEvent) WithIdentifier(identifier string) *AuditEvent {
	e.Identifier = identifier
	return e
}

// WithDevice sets device metadata captured from the request
func (e *AuditEvent) WithDevice(device DeviceMeta) *AuditEvent {
	e.DeviceID = device.DeviceID
	e.IPAddress = device.IPAddress
	e.UserAgent = device.UserAgent
	return e
}

// WithError marks the event failed and records the cause
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}
