package model

import (
	"errors"
	"fmt"
	"time"

	"guesthouse/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID         = "id"
	FieldRoomID     = "room_id"
	FieldRoomName   = "room_name"
	FieldGuestName  = "guest_name"
	FieldGuestEmail = "guest_email"
	FieldCheckIn    = "check_in"
	FieldCheckOut   = "check_out"
	FieldGuests     = "guests"
	FieldMessage    = "message"
	FieldStatus     = "status"
)

// Status is the lifecycle state of a booking. Only the three constants below are valid.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

var (
	ErrUnknownStatus      = errors.New("unknown booking status")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrStatusAlreadyValue = errors.New("booking already has this status")
)

// Statuses lists every status in display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCancelled}
}

func ParseStatus(value string) (Status, error) {
	status := Status(value)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, value)
	}

	return status, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// TransitionTo checks whether an operator may move a booking from s to next. Nothing moves back to
// pending; confirmed and cancelled may be swapped.
func (s Status) TransitionTo(next Status) error {
	if !next.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, next)
	}

	if s == next {
		return ErrStatusAlreadyValue
	}

	switch next {
	case StatusPending:
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, s, next)
	case StatusConfirmed, StatusCancelled:
		return nil
	}

	return nil
}

type Booking struct {
	ID         string    `db:"id"`
	RoomID     string    `db:"room_id"`
	RoomName   string    `db:"room_name"`
	GuestName  string    `db:"guest_name"`
	GuestEmail string    `db:"guest_email"`
	CheckIn    time.Time `db:"check_in"`
	CheckOut   time.Time `db:"check_out"`
	Guests     int       `db:"guests"`
	Message    *string   `db:"message"`
	Status     Status    `db:"status"`
	model.Metadata
}
