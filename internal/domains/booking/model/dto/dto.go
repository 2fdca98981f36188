package dto

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"guesthouse/internal/domains/booking/engine"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	gModel "guesthouse/shared/model"
	"guesthouse/shared/timezone"
)

type CreateBookingRequest struct {
	RoomID     string `json:"room_id"     validate:"required"`
	GuestName  string `json:"guest_name"  validate:"required,max=100"`
	GuestEmail string `json:"guest_email" validate:"required,email,max=100"`
	CheckIn    string `json:"check_in"    validate:"required,date"`
	CheckOut   string `json:"check_out"   validate:"required,date"`
	Guests     int    `json:"guests"      validate:"required,gt=0"`
	Message    string `json:"message"     validate:"omitempty,max=1000"`
}

// Dates parses the requested stay. Ordering is checked by the engine, not here.
func (c *CreateBookingRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.ParseDate(c.CheckIn)
	if err != nil {
		return checkIn, checkOut, fmt.Errorf("invalid check_in: %w", err)
	}

	checkOut, err = timezone.ParseDate(c.CheckOut)
	if err != nil {
		return checkIn, checkOut, fmt.Errorf("invalid check_out: %w", err)
	}

	return checkIn, checkOut, nil
}

func (c *CreateBookingRequest) ToModel(roomName string) (model.Booking, error) {
	checkIn, checkOut, err := c.Dates()
	if err != nil {
		return model.Booking{}, err
	}

	var message *string
	if trimmed := strings.TrimSpace(c.Message); trimmed != "" {
		message = &trimmed
	}

	now := timezone.Now()

	return model.Booking{
		ID:         uuid.NewString(),
		RoomID:     c.RoomID,
		RoomName:   roomName,
		GuestName:  strings.TrimSpace(c.GuestName),
		GuestEmail: strings.TrimSpace(c.GuestEmail),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     c.Guests,
		Message:    message,
		Status:     model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  constant.ContextGuest,
			ModifiedBy: constant.ContextGuest,
		},
	}, nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

type BookingResponse struct {
	ID         string  `json:"id"`
	RoomID     string  `json:"room_id"`
	RoomName   string  `json:"room_name"`
	GuestName  string  `json:"guest_name"`
	GuestEmail string  `json:"guest_email"`
	CheckIn    string  `json:"check_in"`
	CheckOut   string  `json:"check_out"`
	Nights     int     `json:"nights"`
	Guests     int     `json:"guests"`
	Message    *string `json:"message"`
	Status     string  `json:"status"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomName = model.RoomName
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.CheckIn = model.CheckIn.Format(constant.DayFormat)
	r.CheckOut = model.CheckOut.Format(constant.DayFormat)
	r.Nights = engine.Nights(model.CheckIn, model.CheckOut)
	r.Guests = model.Guests
	r.Message = model.Message
	r.Status = model.Status.String()
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingFilter narrows the admin listing. Zero fields match everything.
type BookingFilter struct {
	RoomID   string
	Status   model.Status
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string
}

func (f *BookingFilter) FromRequest(r *http.Request) error {
	query := r.URL.Query()

	f.RoomID = strings.TrimSpace(query.Get(constant.RequestParamRoomID))
	f.Search = strings.ToLower(strings.TrimSpace(query.Get(constant.RequestParamSearch)))

	if value := query.Get(constant.RequestParamStatus); value != "" {
		status, err := model.ParseStatus(value)
		if err != nil {
			return err //nolint:wrapcheck
		}

		f.Status = status
	}

	for param, target := range map[string]**time.Time{
		constant.RequestParamDateFrom: &f.DateFrom,
		constant.RequestParamDateTo:   &f.DateTo,
	} {
		value := query.Get(param)
		if value == "" {
			continue
		}

		date, err := timezone.ParseDate(value)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", param, err)
		}

		*target = &date
	}

	return nil
}

// Match applies every set criterion. The date range is inclusive and applies to check-in; the
// search is a case-insensitive substring of the guest name or email.
func (f *BookingFilter) Match(booking model.Booking) bool {
	if f.RoomID != "" && booking.RoomID != f.RoomID {
		return false
	}

	if f.Status != "" && booking.Status != f.Status {
		return false
	}

	checkIn := engine.DateOf(booking.CheckIn)

	if f.DateFrom != nil && checkIn.Before(*f.DateFrom) {
		return false
	}

	if f.DateTo != nil && checkIn.After(*f.DateTo) {
		return false
	}

	if f.Search != "" {
		search := strings.ToLower(f.Search)

		if !strings.Contains(strings.ToLower(booking.GuestName), search) &&
			!strings.Contains(strings.ToLower(booking.GuestEmail), search) {
			return false
		}
	}

	return true
}

type StatsResponse struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Cancelled int `json:"cancelled"`
}

type GuestResponse struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	TotalDays int    `json:"total_days"`
	Bookings  int    `json:"bookings"`
}

type DashboardResponse struct {
	Stats       StatsResponse   `json:"stats"`
	Leaderboard []GuestResponse `json:"leaderboard"`
}

func (r *DashboardResponse) FromEngine(stats engine.Stats, leaders []engine.GuestStat) {
	r.Stats = StatsResponse{
		Total:     stats.Total,
		Pending:   stats.Pending,
		Confirmed: stats.Confirmed,
		Cancelled: stats.Cancelled,
	}

	r.Leaderboard = make([]GuestResponse, len(leaders))
	for i, leader := range leaders {
		r.Leaderboard[i] = GuestResponse{
			Email:     leader.Email,
			Name:      leader.Name,
			TotalDays: leader.TotalDays,
			Bookings:  leader.Bookings,
		}
	}
}
