package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/pos-backoffice/internal/events"
)

// AuditedEvents lists the event types written to the audit log.
var AuditedEvents = []events.EventType{
	events.EventLoginSucceeded,
	events.EventLoginFailed,
	events.EventLoginThrottled,
	events.EventLogout,
	events.EventOutletSelected,
}

// StartAuditWorker subscribes an audit log writer to security events.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}
	audit := logger.Named("audit")
	for _, eventType := range AuditedEvents {
		dispatcher.Subscribe(eventType, func(_ context.Context, event events.Event) error {
			audit.Info("security event",
				zap.String("event_id", event.ID),
				zap.String("event_type", string(event.Type)),
				zap.Int64("user_id", event.Actor.UserID),
				zap.String("email", event.Actor.Email),
				zap.String("ip", event.Actor.IP),
				zap.Time("at", event.Timestamp),
				zap.Any("payload", event.Payload),
			)
			return nil
		})
	}
}
