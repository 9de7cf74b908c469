package notify

import (
	"context"

	"github.com/noah-isme/backend-shop/internal/events"
	"github.com/noah-isme/backend-shop/internal/obs"
)

// MetricsNotifier mirrors notifications into Prometheus counters. Collectors
// must be registered via obs.MustRegisterDomainMetrics before use.
type MetricsNotifier struct{}

// Notify implements events.Notifier.
func (MetricsNotifier) Notify(_ context.Context, ev events.Event) error {
	if obs.NotificationsTotal != nil {
		obs.NotificationsTotal.WithLabelValues(ev.Topic, string(ev.Severity)).Inc()
	}
	if ev.Topic == events.TopicCartCheckedOut && ev.Severity == events.SeveritySuccess && obs.OrdersCompletedTotal != nil {
		obs.OrdersCompletedTotal.Inc()
	}
	if ev.Topic == events.TopicCouponApplied && ev.Severity == events.SeverityError && obs.CouponRejectionsTotal != nil {
		obs.CouponRejectionsTotal.Inc()
	}
	return nil
}
