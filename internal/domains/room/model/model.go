package model

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"guesthouse/shared/timezone"
)

const (
	EntityName = "room"

	// SettingsKey is where the settings document lives in the key-value store.
	SettingsKey = "roomSettings"
	// SettingsChannel carries a copy of the settings after every save.
	SettingsChannel = "roomSettings:changed"

	defaultCapacity     = 2
	defaultBookingUntil = "2024-12-31"
)

var ErrUnknownRoom = errors.New("unknown room")

// Room is the fixed description of a bookable space.
type Room struct {
	ID          string
	Description string
	Capacity    int
}

// Catalogue lists the rooms of the guesthouse in display order.
var Catalogue = []Room{
	{ID: "room-1", Description: "Master bedroom", Capacity: defaultCapacity},
	{ID: "room-2", Description: "Guest bedroom", Capacity: defaultCapacity},
	{ID: "room-3", Description: "Comfortable sofa bed in the living room", Capacity: defaultCapacity},
}

func FindRoom(id string) (Room, error) {
	for _, room := range Catalogue {
		if room.ID == id {
			return room, nil
		}
	}

	return Room{}, fmt.Errorf("%w: %s", ErrUnknownRoom, id)
}

// RoomSetting is the operator-controlled state of a room. BookingUntil is a yyyy-mm-dd date; past
// it the room takes no new requests even when enabled.
type RoomSetting struct {
	Name         string `json:"name"`
	Enabled      bool   `json:"enabled"`
	BookingUntil string `json:"bookingUntil,omitempty"`
}

// Cutoff returns the parsed BookingUntil date, or nil when no cutoff is set.
func (r RoomSetting) Cutoff() (*time.Time, error) {
	if r.BookingUntil == "" {
		return nil, nil
	}

	cutoff, err := timezone.ParseDate(r.BookingUntil)
	if err != nil {
		return nil, fmt.Errorf("invalid bookingUntil %q: %w", r.BookingUntil, err)
	}

	return &cutoff, nil
}

// Settings maps room id to its setting.
type Settings map[string]RoomSetting

func DefaultSettings() Settings {
	return Settings{
		"room-1": {Name: "Room Uno", Enabled: true, BookingUntil: defaultBookingUntil},
		"room-2": {Name: "Room Dos", Enabled: true, BookingUntil: defaultBookingUntil},
		"room-3": {Name: "El Sofa", Enabled: true, BookingUntil: defaultBookingUntil},
	}
}

// Validate rejects documents that miss a catalogue room or carry an unreadable cutoff.
func (s Settings) Validate() error {
	for _, room := range Catalogue {
		setting, ok := s[room.ID]
		if !ok {
			return fmt.Errorf("missing settings for %s", room.ID)
		}

		if _, err := setting.Cutoff(); err != nil {
			return fmt.Errorf("room %s: %w", room.ID, err)
		}
	}

	return nil
}

func (s Settings) Clone() Settings {
	return maps.Clone(s)
}
