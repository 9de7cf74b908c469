// Package events provides an in-process bus for domain notifications. The
// engine itself never notifies anyone; services emit events here and the
// bus fans them out to the configured sinks.
package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Severity classifies a notification for presentation.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Event is one domain notification.
type Event struct {
	Topic    string    `json:"topic"`
	Message  string    `json:"message"`
	Severity Severity  `json:"severity"`
	At       time.Time `json:"at"`
}

// Notifier reacts to emitted events (logging, feeds, metrics).
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Bus fans events out to downstream notifiers.
type Bus struct {
	Notifiers []Notifier
	Now       func() time.Time
}

func (b *Bus) now() time.Time {
	if b != nil && b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// Emit dispatches the event to all configured notifiers. Notifier failures
// are joined and returned but do not stop the fan-out.
func (b *Bus) Emit(ctx context.Context, topic string, severity Severity, message string) (Event, error) {
	if b == nil {
		return Event{}, errors.New("events: bus not configured")
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Event{}, errors.New("events: topic is required")
	}
	ev := Event{
		Topic:    topic,
		Message:  message,
		Severity: severity,
		At:       b.now(),
	}
	var joined error
	for _, notifier := range b.Notifiers {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, ev); err != nil {
			joined = errors.Join(joined, fmt.Errorf("events: notifier: %w", err))
		}
	}
	return ev, joined
}
