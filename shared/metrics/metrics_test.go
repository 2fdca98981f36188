package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guesthouse/shared/metrics"
)

func TestRegisterAndCount(t *testing.T) {
	metrics.Register()
	metrics.Register()

	metrics.IncBookingRequested("room-1", "accepted")
	metrics.IncStatusChanged("confirmed", "rejected")
	metrics.IncBookingDeleted()
	metrics.IncAdminLogin("rejected")
	metrics.ObserveSnapshot("ok", 4)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	values := map[string]float64{}

	for _, family := range families {
		for _, metric := range family.GetMetric() {
			if counter := metric.GetCounter(); counter != nil {
				values[family.GetName()] += counter.GetValue()
			}

			if gauge := metric.GetGauge(); gauge != nil {
				values[family.GetName()] += gauge.GetValue()
			}
		}
	}

	assert.GreaterOrEqual(t, values["guesthouse_booking_requested_total"], 1.0)
	assert.GreaterOrEqual(t, values["guesthouse_booking_status_changed_total"], 1.0)
	assert.GreaterOrEqual(t, values["guesthouse_booking_deleted_total"], 1.0)
	assert.GreaterOrEqual(t, values["guesthouse_admin_login_total"], 1.0)
	assert.GreaterOrEqual(t, values["guesthouse_snapshot_refresh_total"], 1.0)
	assert.Equal(t, 4.0, values["guesthouse_snapshot_bookings"])
}
