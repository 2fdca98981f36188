package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guesthouse/infras/otel/mocks"
	"guesthouse/internal/domains/room/model"
	"guesthouse/internal/domains/room/model/dto"
	"guesthouse/internal/domains/room/repository"
	"guesthouse/internal/domains/room/service"
	"guesthouse/shared/failure"
	"guesthouse/shared/timezone"
)

func boolPtr(v bool) *bool { return &v }

func strPtr(v string) *string { return &v }

func today() string { return timezone.Today().Format(time.DateOnly) }

func yesterday() string { return timezone.Today().AddDate(0, 0, -1).Format(time.DateOnly) }

func newService() service.Room {
	return service.New(repository.NewMemory(), mocks.NewOtel())
}

func TestRoomService_GetAll(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	rooms, err := svc.GetAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rooms, len(model.Catalogue))

	assert.Equal(t, "room-1", rooms[0].ID)
	assert.Equal(t, "Room Uno", rooms[0].Name)
	assert.Equal(t, "Master bedroom", rooms[0].Description)
	assert.Equal(t, 2, rooms[0].Capacity)
	require.NotNil(t, rooms[0].BookingUntil)
	assert.Equal(t, "2024-12-31", *rooms[0].BookingUntil)

	_, err = svc.Update(ctx, "room-2", dto.UpdateRoomRequest{Enabled: boolPtr(false)})
	require.NoError(t, err)

	disabled, err := svc.GetAll(ctx, boolPtr(false))
	require.NoError(t, err)
	require.Len(t, disabled, 1)
	assert.Equal(t, "room-2", disabled[0].ID)
	assert.False(t, disabled[0].Bookable)

	enabled, err := svc.GetAll(ctx, boolPtr(true))
	require.NoError(t, err)
	assert.Len(t, enabled, 2)
}

func TestRoomService_Update(t *testing.T) {
	tests := []struct {
		name         string
		id           string
		req          dto.UpdateRoomRequest
		wantCode     int
		wantBookable bool
		wantUntil    *string
	}{
		{
			name:         "clear cutoff opens an enabled room",
			id:           "room-1",
			req:          dto.UpdateRoomRequest{ClearBookingUntil: true},
			wantBookable: true,
		},
		{
			name:         "cutoff today still allows booking",
			id:           "room-1",
			req:          dto.UpdateRoomRequest{BookingUntil: strPtr(today())},
			wantBookable: true,
			wantUntil:    strPtr(today()),
		},
		{
			name:      "cutoff yesterday closes the room",
			id:        "room-3",
			req:       dto.UpdateRoomRequest{BookingUntil: strPtr(yesterday())},
			wantUntil: strPtr(yesterday()),
		},
		{
			name: "disabled room",
			id:   "room-2",
			req:  dto.UpdateRoomRequest{Enabled: boolPtr(false), ClearBookingUntil: true},
		},
		{
			name:     "empty request",
			id:       "room-1",
			req:      dto.UpdateRoomRequest{},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "set and clear together",
			id:       "room-1",
			req:      dto.UpdateRoomRequest{BookingUntil: strPtr(today()), ClearBookingUntil: true},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "unknown room",
			id:       "room-9",
			req:      dto.UpdateRoomRequest{Enabled: boolPtr(true)},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService()

			got, err := svc.Update(context.Background(), tt.id, tt.req)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.id, got.ID)
			assert.Equal(t, tt.wantBookable, got.Bookable)
			assert.Equal(t, tt.wantUntil, got.BookingUntil)

			again, err := svc.Get(context.Background(), tt.id)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestRoomService_Get_NotFound(t *testing.T) {
	_, err := newService().Get(context.Background(), "attic")

	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestRoomService_Gate(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	gate, setting, err := svc.Gate(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, "Room Uno", setting.Name)
	assert.True(t, gate.Enabled)
	require.NotNil(t, gate.BookingUntil)
	assert.Equal(t, timezone.Today(), gate.Today)

	_, err = svc.Update(ctx, "room-1", dto.UpdateRoomRequest{ClearBookingUntil: true})
	require.NoError(t, err)

	gate, _, err = svc.Gate(ctx, "room-1")
	require.NoError(t, err)
	assert.Nil(t, gate.BookingUntil)
	assert.True(t, gate.Open())

	_, _, err = svc.Gate(ctx, "room-9")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestRoomService_Watch(t *testing.T) {
	ctx := context.Background()
	shared := repository.NewMemory()

	reader := service.New(shared, mocks.NewOtel())
	writer := service.New(shared, mocks.NewOtel())

	// Prime the reader's cached copy.
	before, err := reader.Get(ctx, "room-3")
	require.NoError(t, err)
	assert.True(t, before.Enabled)

	stop := reader.Watch(ctx)
	defer stop()

	_, err = writer.Update(ctx, "room-3", dto.UpdateRoomRequest{Enabled: boolPtr(false)})
	require.NoError(t, err)

	after, err := reader.Get(ctx, "room-3")
	require.NoError(t, err)
	assert.False(t, after.Enabled)
}

func TestRoomService_StoreFailure(t *testing.T) {
	repo := &failingSettings{err: errors.New("connection refused")}

	svc := service.New(repo, mocks.NewOtel())

	_, err := svc.GetAll(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))

	_, err = svc.Update(context.Background(), "room-1", dto.UpdateRoomRequest{Enabled: boolPtr(true)})
	require.Error(t, err)
}

type failingSettings struct {
	err error
}

func (f *failingSettings) Load(context.Context) (model.Settings, error) { return nil, f.err }

func (f *failingSettings) Save(context.Context, model.Settings) error { return f.err }

func (f *failingSettings) OnSettingsChanged(context.Context, func(model.Settings)) func() {
	return func() {}
}
