package dto

import (
	"guesthouse/internal/domains/booking/engine"
	"guesthouse/internal/domains/room/model"
)

type UpdateRoomRequest struct {
	Enabled           *bool   `json:"enabled"             validate:"omitempty"`
	BookingUntil      *string `json:"booking_until"       validate:"omitempty,date"`
	ClearBookingUntil bool    `json:"clear_booking_until" validate:"omitempty"`
}

func (r *UpdateRoomRequest) Empty() bool {
	return r.Enabled == nil && r.BookingUntil == nil && !r.ClearBookingUntil
}

// Apply returns setting with the requested changes.
func (r *UpdateRoomRequest) Apply(setting model.RoomSetting) model.RoomSetting {
	if r.Enabled != nil {
		setting.Enabled = *r.Enabled
	}

	if r.ClearBookingUntil {
		setting.BookingUntil = ""
	}

	if r.BookingUntil != nil {
		setting.BookingUntil = *r.BookingUntil
	}

	return setting
}

type RoomResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Capacity     int     `json:"capacity"`
	Enabled      bool    `json:"enabled"`
	BookingUntil *string `json:"booking_until"`
	Bookable     bool    `json:"bookable"`
}

func (r *RoomResponse) FromModel(room model.Room, setting model.RoomSetting, gate engine.RoomGate) {
	r.ID = room.ID
	r.Name = setting.Name
	r.Description = room.Description
	r.Capacity = room.Capacity
	r.Enabled = setting.Enabled
	r.Bookable = gate.Open()
	r.BookingUntil = nil

	if setting.BookingUntil != "" {
		until := setting.BookingUntil
		r.BookingUntil = &until
	}
}
