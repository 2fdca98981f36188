package model

import (
	"time"

	bookingModel "guesthouse/internal/domains/booking/model"
	"guesthouse/shared/constant"
)

// BookingCreated is published after a booking request is stored.
type BookingCreated struct {
	ID         string    `json:"id"`
	RoomID     string    `json:"room_id"`
	RoomName   string    `json:"room_name"`
	GuestName  string    `json:"guest_name"`
	GuestEmail string    `json:"guest_email"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Guests     int       `json:"guests"`
	Message    *string   `json:"message,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func (e *BookingCreated) FromModel(booking bookingModel.Booking) {
	e.ID = booking.ID
	e.RoomID = booking.RoomID
	e.RoomName = booking.RoomName
	e.GuestName = booking.GuestName
	e.GuestEmail = booking.GuestEmail
	e.CheckIn = booking.CheckIn.Format(constant.DayFormat)
	e.CheckOut = booking.CheckOut.Format(constant.DayFormat)
	e.Guests = booking.Guests
	e.Message = booking.Message
	e.Status = booking.Status.String()
	e.CreatedAt = booking.CreatedAt
}

// StatusChanged is published after an operator confirms or cancels a booking.
type StatusChanged struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	ChangedAt time.Time `json:"changed_at"`
}
