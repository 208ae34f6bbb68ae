// Package metrics exposes Prometheus counters for the booking API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReservationsCreated counts inserted reservations by resource.
	ReservationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gogols_reservations_created_total",
		Help: "Total number of reservations created, by resource.",
	}, []string{"resource"})

	// ReservationRejects counts booking attempts refused before or at write time.
	ReservationRejects = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gogols_reservation_rejects_total",
		Help: "Total number of rejected booking attempts, by resource and reason.",
	}, []string{"resource", "reason"})

	StoreReadRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gogols_store_read_retries_total",
		Help: "Total number of retried store reads, by operation.",
	}, []string{"op"})

	// AvailabilityFailOpen counts reads that gave up and fell back to "available".
	AvailabilityFailOpen = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gogols_availability_fail_open_total",
		Help: "Total number of availability reads that failed open, by resource.",
	}, []string{"resource"})

	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gogols_notifications_total",
		Help: "Total number of outbound confirmation notifications, by result.",
	}, []string{"result"})

	StatusChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gogols_status_changes_total",
		Help: "Total number of admin status changes, by resource and new status.",
	}, []string{"resource", "status"})

	AdminLogins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gogols_admin_logins_total",
		Help: "Total number of admin login attempts, by result.",
	}, []string{"result"})
)

func RecordRetry(op string) {
	StoreReadRetries.WithLabelValues(op).Inc()
}

func RecordNotification(ok bool) {
	if ok {
		Notifications.WithLabelValues("sent").Inc()
		return
	}
	Notifications.WithLabelValues("failed").Inc()
}

func RecordLogin(ok bool) {
	if ok {
		AdminLogins.WithLabelValues("success").Inc()
		return
	}
	AdminLogins.WithLabelValues("failure").Inc()
}
