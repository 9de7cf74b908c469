package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// NotificationsTotal counts domain events fanned out to notifiers,
	// labelled by topic and severity.
	NotificationsTotal *prometheus.CounterVec
	// OrdersCompletedTotal counts completed checkouts.
	OrdersCompletedTotal prometheus.Counter
	// CouponRejectionsTotal counts coupon applications rejected by policy.
	CouponRejectionsTotal prometheus.Counter
)

// MustRegisterDomainMetrics initialises and registers shop-specific
// Prometheus collectors. Safe to call more than once.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		NotificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Count of domain events delivered to notifiers.",
		}, []string{"topic", "severity"})
		OrdersCompletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_completed_total",
			Help:      "Number of carts checked out successfully.",
		})
		CouponRejectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coupon_rejections_total",
			Help:      "Number of coupon applications rejected by policy.",
		})

		mustRegisterCollector(reg, NotificationsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				NotificationsTotal = v
			}
		})
		mustRegisterCollector(reg, OrdersCompletedTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				OrdersCompletedTotal = v
			}
		})
		mustRegisterCollector(reg, CouponRejectionsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				CouponRejectionsTotal = v
			}
		})
	})
}
