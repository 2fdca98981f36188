// Package engine decides whether a stay may be accepted for a room and derives per-day
// availability from a snapshot of bookings. Every function here is pure: the same snapshot always
// yields the same answer, so callers may re-run them after each refresh.
//
// Stays are half-open date ranges [check-in, check-out). The check-out day is free for the next
// guest.
package engine

import (
	"cmp"
	"errors"
	"iter"
	"math"
	"slices"
	"time"

	"guesthouse/internal/domains/booking/model"
	"guesthouse/shared/constant"
)

var (
	ErrInvalidRange = errors.New("check-out date must be after check-in date")
	ErrRoomDisabled = errors.New("room is not accepting bookings for these dates")
	ErrDateConflict = errors.New("selected dates are not available")
)

// DayStatus is the display state of one calendar day.
type DayStatus string

const (
	DayAvailable DayStatus = "available"
	DayPending   DayStatus = "pending"
	DayBooked    DayStatus = "booked"
)

// Candidate is a stay being requested or confirmed. ExcludeID names a booking that must not count as
// a conflict source, which is the booking itself when an operator confirms it.
type Candidate struct {
	RoomID    string
	CheckIn   time.Time
	CheckOut  time.Time
	ExcludeID string
}

// RoomGate carries the room settings that apply to new requests.
type RoomGate struct {
	Enabled      bool
	BookingUntil *time.Time
	Today        time.Time
}

// Open reports whether the room takes new requests today. A cutoff on today still allows booking.
func (g RoomGate) Open() bool {
	if !g.Enabled {
		return false
	}

	if g.BookingUntil != nil && DateOf(*g.BookingUntil).Before(DateOf(g.Today)) {
		return false
	}

	return true
}

type Day struct {
	Date   time.Time
	Status DayStatus
}

type GuestStat struct {
	Email     string
	Name      string
	TotalDays int
	Bookings  int
}

type Stats struct {
	Total     int
	Pending   int
	Confirmed int
	Cancelled int
}

// DateOf drops the time of day, keeping the calendar date t carries in its own location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) share at least one night.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	aStart, aEnd = DateOf(aStart), DateOf(aEnd)
	bStart, bEnd = DateOf(bStart), DateOf(bEnd)

	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CanAccept runs the acceptance gates in order and returns the first failure. A nil gate skips the
// room check, which is how confirmation of an existing request is evaluated.
func CanAccept(candidate Candidate, gate *RoomGate, existing []model.Booking) error {
	if !DateOf(candidate.CheckIn).Before(DateOf(candidate.CheckOut)) {
		return ErrInvalidRange
	}

	if gate != nil && !gate.Open() {
		return ErrRoomDisabled
	}

	for _, booking := range existing {
		if booking.RoomID != candidate.RoomID {
			continue
		}

		if candidate.ExcludeID != "" && booking.ID == candidate.ExcludeID {
			continue
		}

		if !blocks(booking.Status) {
			continue
		}

		if Overlaps(candidate.CheckIn, candidate.CheckOut, booking.CheckIn, booking.CheckOut) {
			return ErrDateConflict
		}
	}

	return nil
}

func blocks(status model.Status) bool {
	switch status {
	case model.StatusConfirmed:
		return true
	case model.StatusPending, model.StatusCancelled:
		return false
	}

	return false
}

// Calendar yields one Day per date starting at from. The sequence can be ranged over any number of
// times and always produces the same days.
func Calendar(roomID string, from time.Time, days int, bookings []model.Booking) iter.Seq[Day] {
	start := DateOf(from)

	relevant := make([]model.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if booking.RoomID == roomID && booking.Status != model.StatusCancelled {
			relevant = append(relevant, booking)
		}
	}

	return func(yield func(Day) bool) {
		for offset := range max(days, 0) {
			date := start.AddDate(0, 0, offset)

			if !yield(Day{Date: date, Status: classify(date, relevant)}) {
				return
			}
		}
	}
}

func classify(date time.Time, bookings []model.Booking) DayStatus {
	status := DayAvailable

	for _, booking := range bookings {
		if date.Before(DateOf(booking.CheckIn)) || !date.Before(DateOf(booking.CheckOut)) {
			continue
		}

		switch booking.Status {
		case model.StatusConfirmed:
			return DayBooked
		case model.StatusPending:
			status = DayPending
		case model.StatusCancelled:
		}
	}

	return status
}

// Nights counts started days between check-in and check-out.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / constant.HoursInDay))
}

// Leaderboard ranks guests by confirmed nights. Guests are keyed by exact email and keep the name of
// their first confirmed booking; ties keep the order guests were first seen.
func Leaderboard(bookings []model.Booking) []GuestStat {
	index := map[string]int{}
	stats := []GuestStat{}

	for _, booking := range bookings {
		switch booking.Status {
		case model.StatusConfirmed:
		case model.StatusPending, model.StatusCancelled:
			continue
		default:
			continue
		}

		nights := Nights(booking.CheckIn, booking.CheckOut)

		if idx, ok := index[booking.GuestEmail]; ok {
			stats[idx].TotalDays += nights
			stats[idx].Bookings++

			continue
		}

		index[booking.GuestEmail] = len(stats)
		stats = append(stats, GuestStat{
			Email:     booking.GuestEmail,
			Name:      booking.GuestName,
			TotalDays: nights,
			Bookings:  1,
		})
	}

	slices.SortStableFunc(stats, func(a, b GuestStat) int {
		return cmp.Compare(b.TotalDays, a.TotalDays)
	})

	if len(stats) > constant.MaxLeaderSize {
		stats = stats[:constant.MaxLeaderSize]
	}

	return stats
}

func CountStatuses(bookings []model.Booking) Stats {
	stats := Stats{Total: len(bookings)}

	for _, booking := range bookings {
		switch booking.Status {
		case model.StatusPending:
			stats.Pending++
		case model.StatusConfirmed:
			stats.Confirmed++
		case model.StatusCancelled:
			stats.Cancelled++
		}
	}

	return stats
}
