package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-shop/internal/events"
)

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	Logger zerolog.Logger
}

// Notify implements events.Notifier.
func (l LogNotifier) Notify(_ context.Context, ev events.Event) error {
	var evt *zerolog.Event
	switch ev.Severity {
	case events.SeverityError:
		evt = l.Logger.Warn()
	case events.SeverityWarning:
		evt = l.Logger.Warn()
	default:
		evt = l.Logger.Info()
	}
	evt.Str("topic", ev.Topic).
		Str("severity", string(ev.Severity)).
		Msg(ev.Message)
	return nil
}
