package snapshot_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"guesthouse/internal/domains/booking/mocks"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/internal/domains/calendar/snapshot"
)

func bookings(ids ...string) []model.Booking {
	res := make([]model.Booking, 0, len(ids))
	for _, id := range ids {
		res = append(res, model.Booking{ID: id, RoomID: "room-1", Status: model.StatusPending})
	}

	return res
}

func TestRefresher_BookingsLoadsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBooking(ctrl)

	repo.EXPECT().ListAll(gomock.Any()).Return(bookings("a", "b"), nil).Times(1)

	refresher := snapshot.NewWithInterval(repo, 0)

	first, err := refresher.Bookings(context.Background())
	require.NoError(t, err)
	assert.Len(t, first, 2)

	first[0].ID = "mutated"

	second, err := refresher.Bookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", second[0].ID)
}

func TestRefresher_RefreshKeepsPreviousOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBooking(ctrl)

	gomock.InOrder(
		repo.EXPECT().ListAll(gomock.Any()).Return(bookings("a"), nil),
		repo.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("deadline exceeded")),
		repo.EXPECT().ListAll(gomock.Any()).Return(bookings("a", "b", "c"), nil),
	)

	refresher := snapshot.NewWithInterval(repo, 0)

	_, err := refresher.Refresh(context.Background())
	require.NoError(t, err)

	_, err = refresher.Refresh(context.Background())
	require.Error(t, err)

	kept, err := refresher.Bookings(context.Background())
	require.NoError(t, err)
	assert.Len(t, kept, 1)

	fresh, err := refresher.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, fresh, 3)
}

func TestRefresher_BookingsFailsWhenNeverLoaded(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBooking(ctrl)

	repo.EXPECT().ListAll(gomock.Any()).Return(nil, errors.New("unavailable"))

	_, err := snapshot.NewWithInterval(repo, 0).Bookings(context.Background())
	assert.Error(t, err)
}

func TestRefresher_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBooking(ctrl)

	var calls atomic.Int32

	repo.EXPECT().ListAll(gomock.Any()).DoAndReturn(func(context.Context) ([]model.Booking, error) {
		calls.Add(1)

		return bookings("a"), nil
	}).MinTimes(3)

	refresher := snapshot.NewWithInterval(repo, 10*time.Millisecond)

	refresher.Start(context.Background())
	refresher.Start(context.Background())

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	refresher.Stop()

	stopped := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())

	refresher.Stop()
}

func TestRefresher_StopsWithContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBooking(ctrl)

	var calls atomic.Int32

	repo.EXPECT().ListAll(gomock.Any()).DoAndReturn(func(context.Context) ([]model.Booking, error) {
		calls.Add(1)

		return bookings(), nil
	}).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	refresher := snapshot.NewWithInterval(repo, 10*time.Millisecond)
	refresher.Start(ctx)

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)

	cancel()
	refresher.Stop()

	stopped := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())
}

func TestRefresher_SlowFetchDoesNotOverwriteNewer(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockBooking(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})

	gomock.InOrder(
		repo.EXPECT().ListAll(gomock.Any()).DoAndReturn(func(context.Context) ([]model.Booking, error) {
			close(started)
			<-release

			return bookings("old"), nil
		}),
		repo.EXPECT().ListAll(gomock.Any()).Return(bookings("old", "new"), nil),
	)

	refresher := snapshot.NewWithInterval(repo, 0)

	type result struct {
		bookings []model.Booking
		err      error
	}

	slow := make(chan result, 1)

	go func() {
		res, err := refresher.Refresh(context.Background())
		slow <- result{bookings: res, err: err}
	}()

	<-started

	fresh, err := refresher.Refresh(context.Background())
	require.NoError(t, err)
	assert.Len(t, fresh, 2)

	close(release)

	var late result

	select {
	case late = <-slow:
	case <-time.After(time.Second):
		t.Fatal("slow refresh did not return")
	}

	require.NoError(t, late.err)
	assert.Len(t, late.bookings, 2)

	current, err := refresher.Bookings(context.Background())
	require.NoError(t, err)
	assert.Len(t, current, 2)
	assert.Equal(t, "new", current[1].ID)
}
