package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "guesthouse"

var (
	once sync.Once

	bookingRequested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_requested_total",
			Help:      "Count of booking requests by room and outcome.",
		},
		[]string{"room", "outcome"},
	)

	statusChanged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_status_changed_total",
			Help:      "Count of admin status decisions by target status and outcome.",
		},
		[]string{"status", "outcome"},
	)

	bookingDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_deleted_total",
			Help:      "Count of bookings deleted by the admin.",
		},
	)

	adminLogin = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "admin_login_total",
			Help:      "Count of admin login attempts by outcome.",
		},
		[]string{"outcome"},
	)

	snapshotRefresh = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_refresh_total",
			Help:      "Count of booking snapshot refreshes by result.",
		},
		[]string{"result"},
	)

	snapshotSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "snapshot_bookings",
			Help:      "Number of bookings held in the latest snapshot.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingRequested, statusChanged, bookingDeleted, adminLogin, snapshotRefresh, snapshotSize)
	})
}

func IncBookingRequested(room, outcome string) {
	bookingRequested.WithLabelValues(room, outcome).Inc()
}

func IncStatusChanged(status, outcome string) {
	statusChanged.WithLabelValues(status, outcome).Inc()
}

func IncBookingDeleted() {
	bookingDeleted.Inc()
}

func IncAdminLogin(outcome string) {
	adminLogin.WithLabelValues(outcome).Inc()
}

func ObserveSnapshot(result string, size int) {
	snapshotRefresh.WithLabelValues(result).Inc()

	if size >= 0 {
		snapshotSize.Set(float64(size))
	}
}
