package engine_test

import (
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"guesthouse/internal/domains/booking/engine"
	"guesthouse/internal/domains/booking/model"
)

func date(value string) time.Time {
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func booking(id, room, checkIn, checkOut string, status model.Status) model.Booking {
	return model.Booking{
		ID:         id,
		RoomID:     room,
		GuestName:  "Guest " + id,
		GuestEmail: id + "@example.com",
		CheckIn:    date(checkIn),
		CheckOut:   date(checkOut),
		Guests:     1,
		Status:     status,
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{name: "same interval", aStart: "2024-06-01", aEnd: "2024-06-05", bStart: "2024-06-01", bEnd: "2024-06-05", want: true},
		{name: "back to back", aStart: "2024-06-01", aEnd: "2024-06-05", bStart: "2024-06-05", bEnd: "2024-06-08", want: false},
		{name: "back to back reversed", aStart: "2024-06-05", aEnd: "2024-06-08", bStart: "2024-06-01", bEnd: "2024-06-05", want: false},
		{name: "check-in inside existing", aStart: "2024-06-03", aEnd: "2024-06-08", bStart: "2024-06-01", bEnd: "2024-06-05", want: true},
		{name: "check-out inside existing", aStart: "2024-05-28", aEnd: "2024-06-02", bStart: "2024-06-01", bEnd: "2024-06-05", want: true},
		{name: "contains existing", aStart: "2024-05-28", aEnd: "2024-06-10", bStart: "2024-06-01", bEnd: "2024-06-05", want: true},
		{name: "contained by existing", aStart: "2024-06-02", aEnd: "2024-06-03", bStart: "2024-06-01", bEnd: "2024-06-05", want: true},
		{name: "disjoint", aStart: "2024-07-01", aEnd: "2024-07-03", bStart: "2024-06-01", bEnd: "2024-06-05", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Overlaps(date(tt.aStart), date(tt.aEnd), date(tt.bStart), date(tt.bEnd))
			assert.Equal(t, tt.want, got)

			symmetric := engine.Overlaps(date(tt.bStart), date(tt.bEnd), date(tt.aStart), date(tt.aEnd))
			assert.Equal(t, got, symmetric)
		})
	}
}

func TestOverlaps_SelfOverlapAcrossRanges(t *testing.T) {
	start := date("2024-01-01")

	for length := 1; length <= 30; length++ {
		end := start.AddDate(0, 0, length)
		assert.True(t, engine.Overlaps(start, end, start, end), "length %d", length)
		assert.False(t, engine.Overlaps(start, end, end, end.AddDate(0, 0, 1)), "turnover after %d", length)
	}
}

func TestOverlaps_IgnoresTimeOfDay(t *testing.T) {
	checkOut := date("2024-06-05").Add(11 * time.Hour)
	checkIn := date("2024-06-05").Add(15 * time.Hour)

	assert.False(t, engine.Overlaps(date("2024-06-01"), checkOut, checkIn, date("2024-06-08")))
}

func TestCanAccept(t *testing.T) {
	today := date("2024-05-01")
	cutoff := date("2024-12-31")
	expired := date("2024-04-30")
	open := &engine.RoomGate{Enabled: true, BookingUntil: &cutoff, Today: today}

	existing := []model.Booking{
		booking("c1", "room-1", "2024-06-01", "2024-06-05", model.StatusConfirmed),
		booking("p1", "room-1", "2024-06-10", "2024-06-12", model.StatusPending),
		booking("x1", "room-1", "2024-06-20", "2024-06-25", model.StatusCancelled),
		booking("c2", "room-2", "2024-07-01", "2024-07-05", model.StatusConfirmed),
	}

	tests := []struct {
		name      string
		candidate engine.Candidate
		gate      *engine.RoomGate
		existing  []model.Booking
		wantErr   error
	}{
		{
			name:      "same day is invalid",
			candidate: engine.Candidate{RoomID: "room-1", CheckIn: date("2024-08-01"), CheckOut: date("2024-08-01")},
			gate:      open,
			wantErr:   engine.ErrInvalidRange,
		},
		{
			name:      "inverted range is invalid even when room is disabled",
			candidate: engine.Candidate{RoomID: "room-1", CheckIn: date("2024-08-05"), CheckOut: date("2024-08-01")},
			gate:      &engine.RoomGate{Enabled: false, Today: today},
			existing:  existing,
			wantErr:   engine.ErrInvalidRange,
		},
		{
			name:      "turnover on check-out day accepted",
			candidate: engine.Candidate{RoomID: "room-1", CheckIn: date("2024-06-05"), CheckOut: date("2024-06-08")},
			gate:      open,
			existing:  existing,
		},
		{
			name:      "overlap with confirmed rejected",
			candidate: engine.Candidate{RoomID: "room-1", CheckIn: date("2024-06-04"), CheckOut: date("2024-06-08")},
			gate:      open,
			existing:  existing,
			wantErr:   engine.ErrDateConflict,
		},
		{
			name:      "overlap with pending accepted",
			candidate: engine.Candidate{RoomID: "room-1", CheckIn: date("2024-06-09"), CheckOut: date("2024-06-11")},
			gate:      open,
			existing:  existing,
		},
		{
			name:      "overlap with cancelled accepted",
			candidate: engine.Candidate{RoomID: "room-1", CheckIn: date("2024-06-21"), CheckOut: date("2024-06-22")},
			gate:      open,
			existing:  existing,
		},
		{
			name:      "other room confirmed ignored",
			candidate: engine.Candidate{RoomID: "room-1", CheckIn: date("2024-07-01"), CheckOut: date("2024-07-05")},
			gate:      open,
			existing:  existing,
		},
		{
			name:      "disabled room rejected without bookings",
			candidate: engine.Candidate{RoomID: "room-3", CheckIn: date("2024-08-01"), CheckOut: date("2024-08-03")},
			gate:      &engine.RoomGate{Enabled: false, Today: today},
			wantErr:   engine.ErrRoomDisabled,
		},
		{
			name:      "expired cutoff rejected",
			candidate: engine.Candidate{RoomID: "room-3", CheckIn: date("2024-08-01"), CheckOut: date("2024-08-03")},
			gate:      &engine.RoomGate{Enabled: true, BookingUntil: &expired, Today: today},
			wantErr:   engine.ErrRoomDisabled,
		},
		{
			name:      "cutoff today still open",
			candidate: engine.Candidate{RoomID: "room-3", CheckIn: date("2024-08-01"), CheckOut: date("2024-08-03")},
			gate:      &engine.RoomGate{Enabled: true, BookingUntil: &today, Today: today},
		},
		{
			name:      "room gate is checked before conflicts",
			candidate: engine.Candidate{RoomID: "room-1", CheckIn: date("2024-06-02"), CheckOut: date("2024-06-03")},
			gate:      &engine.RoomGate{Enabled: false, Today: today},
			existing:  existing,
			wantErr:   engine.ErrRoomDisabled,
		},
		{
			name:      "confirm without gate skips room check",
			candidate: engine.Candidate{RoomID: "room-3", CheckIn: date("2024-08-01"), CheckOut: date("2024-08-03"), ExcludeID: "p9"},
			gate:      nil,
		},
		{
			name:      "confirm excludes itself",
			candidate: engine.Candidate{RoomID: "room-1", CheckIn: date("2024-06-01"), CheckOut: date("2024-06-05"), ExcludeID: "c1"},
			existing:  existing,
		},
		{
			name:      "confirm still conflicts with others",
			candidate: engine.Candidate{RoomID: "room-1", CheckIn: date("2024-06-03"), CheckOut: date("2024-06-06"), ExcludeID: "p1"},
			existing:  existing,
			wantErr:   engine.ErrDateConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := engine.CanAccept(tt.candidate, tt.gate, tt.existing)

			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCanAccept_ConfirmPendingAgainstItself(t *testing.T) {
	pending := booking("p1", "room-1", "2024-06-01", "2024-06-05", model.StatusPending)
	confirmedCopy := pending
	confirmedCopy.Status = model.StatusConfirmed

	candidate := engine.Candidate{RoomID: pending.RoomID, CheckIn: pending.CheckIn, CheckOut: pending.CheckOut, ExcludeID: pending.ID}

	assert.NoError(t, engine.CanAccept(candidate, nil, []model.Booking{pending}))
	assert.NoError(t, engine.CanAccept(candidate, nil, []model.Booking{confirmedCopy}))
}

func TestCalendar(t *testing.T) {
	bookings := []model.Booking{
		booking("p1", "room-1", "2024-06-02", "2024-06-05", model.StatusPending),
		booking("c1", "room-1", "2024-06-03", "2024-06-04", model.StatusConfirmed),
		booking("x1", "room-1", "2024-06-05", "2024-06-06", model.StatusCancelled),
		booking("c2", "room-2", "2024-06-01", "2024-06-08", model.StatusConfirmed),
	}

	days := slices.Collect(engine.Calendar("room-1", date("2024-06-01"), 6, bookings))
	require.Len(t, days, 6)

	want := []engine.DayStatus{
		engine.DayAvailable, // 06-01
		engine.DayPending,   // 06-02
		engine.DayBooked,    // 06-03 pending and confirmed
		engine.DayPending,   // 06-04
		engine.DayAvailable, // 06-05 pending check-out, cancelled stay
		engine.DayAvailable, // 06-06
	}

	for i, day := range days {
		assert.Equal(t, date("2024-06-01").AddDate(0, 0, i), day.Date)
		assert.Equal(t, want[i], day.Status, day.Date.Format(time.DateOnly))
	}
}

func TestCalendar_RestartableAndPure(t *testing.T) {
	bookings := []model.Booking{
		booking("c1", "room-1", "2024-06-03", "2024-06-10", model.StatusConfirmed),
	}

	seq := engine.Calendar("room-1", date("2024-06-01").Add(17*time.Hour), 730, bookings)

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	assert.Len(t, first, 730)
	assert.Equal(t, first, second)
	assert.Equal(t, date("2024-06-01"), first[0].Date)
}

func TestCalendar_StopsEarly(t *testing.T) {
	count := 0

	for range engine.Calendar("room-1", date("2024-06-01"), 730, nil) {
		count++
		if count == 3 {
			break
		}
	}

	assert.Equal(t, 3, count)
	assert.Empty(t, slices.Collect(engine.Calendar("room-1", date("2024-06-01"), 0, nil)))
}

func TestLeaderboard(t *testing.T) {
	first := booking("a", "room-1", "2024-06-01", "2024-06-04", model.StatusConfirmed)
	second := booking("a", "room-2", "2024-07-01", "2024-07-05", model.StatusConfirmed)
	second.GuestName = "Renamed"
	cancelled := booking("a", "room-3", "2024-08-01", "2024-08-20", model.StatusCancelled)
	pending := booking("b", "room-3", "2024-08-01", "2024-08-20", model.StatusPending)
	other := booking("c", "room-1", "2024-09-01", "2024-09-08", model.StatusConfirmed)

	board := engine.Leaderboard([]model.Booking{first, cancelled, second, pending, other})

	require.Len(t, board, 2)
	assert.Equal(t, engine.GuestStat{Email: "a@example.com", Name: "Guest a", TotalDays: 7, Bookings: 2}, board[0])
	assert.Equal(t, engine.GuestStat{Email: "c@example.com", Name: "Guest c", TotalDays: 7, Bookings: 1}, board[1])
}

func TestLeaderboard_EmailIsCaseSensitive(t *testing.T) {
	lower := booking("a", "room-1", "2024-06-01", "2024-06-03", model.StatusConfirmed)
	upper := booking("a", "room-1", "2024-06-05", "2024-06-06", model.StatusConfirmed)
	upper.GuestEmail = "A@example.com"

	board := engine.Leaderboard([]model.Booking{lower, upper})

	require.Len(t, board, 2)
	assert.Equal(t, 2, board[0].TotalDays)
	assert.Equal(t, 1, board[1].TotalDays)
}

func TestLeaderboard_TopTenStable(t *testing.T) {
	var bookings []model.Booking

	for i := range 12 {
		b := booking(fmt.Sprintf("g%02d", i), "room-1", "2024-06-01", "2024-06-03", model.StatusConfirmed)
		bookings = append(bookings, b)
	}

	longest := booking("long", "room-2", "2024-06-01", "2024-06-11", model.StatusConfirmed)
	bookings = append(bookings, longest)

	board := engine.Leaderboard(bookings)

	require.Len(t, board, 10)
	assert.Equal(t, "long@example.com", board[0].Email)

	for i, stat := range board[1:] {
		assert.Equal(t, fmt.Sprintf("g%02d@example.com", i), stat.Email)
	}
}

func TestNights(t *testing.T) {
	assert.Equal(t, 4, engine.Nights(date("2024-06-01"), date("2024-06-05")))
	assert.Equal(t, 1, engine.Nights(date("2024-06-01"), date("2024-06-01").Add(2*time.Hour)))
}

func TestCountStatuses(t *testing.T) {
	stats := engine.CountStatuses([]model.Booking{
		booking("a", "room-1", "2024-06-01", "2024-06-02", model.StatusPending),
		booking("b", "room-1", "2024-06-01", "2024-06-02", model.StatusPending),
		booking("c", "room-1", "2024-06-01", "2024-06-02", model.StatusConfirmed),
		booking("d", "room-1", "2024-06-01", "2024-06-02", model.StatusCancelled),
	})

	assert.Equal(t, engine.Stats{Total: 4, Pending: 2, Confirmed: 1, Cancelled: 1}, stats)
}

func TestRoomGate_Open(t *testing.T) {
	today := date("2024-06-10")
	yesterday := today.AddDate(0, 0, -1)

	assert.True(t, engine.RoomGate{Enabled: true, Today: today}.Open())
	assert.False(t, engine.RoomGate{Enabled: false, Today: today}.Open())
	assert.True(t, engine.RoomGate{Enabled: true, BookingUntil: &today, Today: today}.Open())
	assert.False(t, engine.RoomGate{Enabled: true, BookingUntil: &yesterday, Today: today}.Open())
}
