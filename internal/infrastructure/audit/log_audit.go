package audit

import (
	"context"
	"log"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/you/mobileauthsvc/domain"
)

// LogAuditLogger writes audit events as single structured log lines.
type LogAuditLogger struct {
	clock clockwork.Clock
}

// NewLogAuditLogger creates the default log-based audit logger
func NewLogAuditLogger(clock clockwork.Clock) domain.AuditLogger {
	return &LogAuditLogger{clock: clock}
}

// LogEvent implements domain.AuditLogger. Events arrive without a
// timestamp; the logger stamps them from its clock.
func (l *LogAuditLogger) LogEvent(_ context.Context, event *domain.AuditEvent) {
	if event == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = l.clock.Now().UTC()
	}
	log.Printf("%s: success=%t user_id=%s identifier=%s device_id=%s ip=%s error=%q timestamp=%s",
		event.EventType, event.Success, event.UserID, event.Identifier,
		event.DeviceID, event.IPAddress, event.ErrorMsg, event.Timestamp.Format(time.RFC3339))
}

// Compile-time interface compliance verification
var _ domain.AuditLogger = (*LogAuditLogger)(nil)
