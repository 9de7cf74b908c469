// Package notify carries domain events to the outside world: a structured
// log sink and a bounded in-memory feed the UI polls for toast messages.
package notify

import (
	"context"
	"sync"

	"github.com/noah-isme/backend-shop/internal/events"
)

// DefaultFeedLimit bounds the feed when no limit is configured.
const DefaultFeedLimit = 100

// Feed retains the most recent notifications, newest first.
type Feed struct {
	mu      sync.Mutex
	entries []events.Event
	limit   int
}

// NewFeed constructs a feed retaining at most limit entries.
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return &Feed{limit: limit}
}

// Notify implements events.Notifier.
func (f *Feed) Notify(_ context.Context, ev events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, ev)
	if len(f.entries) > f.limit {
		f.entries = f.entries[len(f.entries)-f.limit:]
	}
	return nil
}

// Recent returns up to n notifications, newest first. n <= 0 returns all
// retained entries.
func (f *Feed) Recent(n int) []events.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n <= 0 || n > len(f.entries) {
		n = len(f.entries)
	}
	out := make([]events.Event, 0, n)
	for i := len(f.entries) - 1; i >= len(f.entries)-n; i-- {
		out = append(out, f.entries[i])
	}
	return out
}
