// Package metrics exports store activity to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"eventbuddy/internal/domain"
)

const namespace = "eventbuddy"

// Counter reports collection sizes.
type Counter interface {
	Count(kind domain.EntityKind) int
}

// Observer counts notifications by kind and exposes collection sizes as
// gauges read at scrape time.
type Observer struct {
	notifications *prometheus.CounterVec
	ready         prometheus.Gauge
}

// NewObserver registers the store collectors on reg.
func NewObserver(reg prometheus.Registerer, counter Counter) (*Observer, error) {
	o := &Observer{
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notifications published by the store, by kind.",
		}, []string{"kind"}),
		ready: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "data_ready",
			Help:      "1 once the initial snapshot has been loaded.",
		}),
	}
	collectors := []prometheus.Collector{o.notifications, o.ready}
	for _, kind := range []domain.EntityKind{domain.KindEvent, domain.KindParticipant, domain.KindTag} {
		collectors = append(collectors, prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "records",
			Help:        "Records held per collection.",
			ConstLabels: prometheus.Labels{"collection": string(kind)},
		}, func() float64 {
			return float64(counter.Count(kind))
		}))
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	for _, kind := range domain.NotificationKinds {
		o.notifications.WithLabelValues(string(kind))
	}
	return o, nil
}

// Handle records one notification.
func (o *Observer) Handle(n domain.Notification) {
	o.notifications.WithLabelValues(string(n.Kind)).Inc()
	if n.Kind == domain.NotifyDataReady {
		o.ready.Set(1)
	}
}

// Attach subscribes the observer to every notification of notifier.
func (o *Observer) Attach(notifier domain.Notifier) func() {
	return notifier.SubscribeAll(o.Handle)
}
