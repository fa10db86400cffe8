package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Booking metrics
	BookingsCreated prometheus.Counter
	BookingsFailed  *prometheus.CounterVec

	// Email metrics
	EmailsSent   *prometheus.CounterVec
	EmailLatency prometheus.Histogram
}

// New creates and registers all application metrics against reg.
// Pass prometheus.DefaultRegisterer in production; tests use a
// fresh registry to avoid duplicate registration.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		BookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Total number of consultation bookings created",
		}),
		BookingsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_failed_total",
			Help:      "Total number of rejected or failed booking attempts",
		}, []string{"reason"}),
		EmailsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_sent_total",
			Help:      "Total number of notification email send attempts",
		}, []string{"recipient", "status"}),
		EmailLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "email_send_duration_seconds",
			Help:      "Time spent sending notification emails",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
	}
}
