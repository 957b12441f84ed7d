package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	EventRegistrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "volunteerhub_event_registrations_total", Help: "Event registration attempts by outcome"},
		[]string{"outcome"},
	)
	NotificationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "volunteerhub_notifications_created_total", Help: "Persisted notifications by type"},
		[]string{"type"},
	)
	PushDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "volunteerhub_push_deliveries_total", Help: "Web push deliveries by outcome"},
		[]string{"outcome"},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "volunteerhub_http_requests_total", Help: "HTTP requests by method and status class"},
		[]string{"method", "status"},
	)

	registerOnce sync.Once
)

func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(EventRegistrations, NotificationsCreated, PushDeliveries, HTTPRequests)
	})
}
