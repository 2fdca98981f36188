package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"guesthouse/config"
	otelMocks "guesthouse/infras/otel/mocks"
	"guesthouse/internal/domains/booking/mocks"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/internal/domains/calendar/service"
	"guesthouse/internal/domains/calendar/snapshot"
	"guesthouse/shared/failure"
	"guesthouse/shared/timezone"
)

func stay(id, room string, from, to int, status model.Status) model.Booking {
	today := timezone.Today()

	return model.Booking{
		ID:       id,
		RoomID:   room,
		CheckIn:  today.AddDate(0, 0, from),
		CheckOut: today.AddDate(0, 0, to),
		Status:   status,
	}
}

func newService(t *testing.T, bookings []model.Booking, listErr error) service.Calendar {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBooking(ctrl)
	repo.EXPECT().ListAll(gomock.Any()).Return(bookings, listErr).AnyTimes()

	cfg := &config.Config{}
	cfg.Booking.CalendarHorizonDays = 30

	return service.New(cfg, snapshot.NewWithInterval(repo, 0), otelMocks.NewOtel())
}

func TestCalendarService_Calendar(t *testing.T) {
	bookings := []model.Booking{
		stay("c1", "room-1", 1, 3, model.StatusConfirmed),
		stay("p1", "room-1", 2, 5, model.StatusPending),
		stay("x1", "room-1", 0, 1, model.StatusCancelled),
		stay("o1", "room-2", 0, 5, model.StatusConfirmed),
	}

	svc := newService(t, bookings, nil)

	got, err := svc.Calendar(context.Background(), "room-1", 6)
	require.NoError(t, err)

	statuses := make([]string, 0, len(got.Days))
	for _, day := range got.Days {
		statuses = append(statuses, day.Status)
	}

	assert.Equal(t, []string{"available", "booked", "booked", "pending", "pending", "available"}, statuses)
	assert.Equal(t, "room-1", got.RoomID)
	assert.Equal(t, timezone.Today().Format(time.DateOnly), got.From)
	assert.Equal(t, got.From, got.Days[0].Date)
	assert.Equal(t, timezone.Today().AddDate(0, 0, 5).Format(time.DateOnly), got.Days[5].Date)
}

func TestCalendarService_Horizon(t *testing.T) {
	tests := []struct {
		name string
		days int
		want int
	}{
		{name: "explicit", days: 7, want: 7},
		{name: "default", days: 0, want: 30},
		{name: "negative", days: -3, want: 30},
		{name: "capped", days: 1000, want: 30},
	}

	svc := newService(t, nil, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Calendar(context.Background(), "room-3", tt.days)
			require.NoError(t, err)
			assert.Len(t, got.Days, tt.want)
		})
	}
}

func TestCalendarService_Errors(t *testing.T) {
	_, err := newService(t, nil, nil).Calendar(context.Background(), "garage", 5)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = newService(t, nil, errors.New("unavailable")).Calendar(context.Background(), "room-1", 5)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
}
