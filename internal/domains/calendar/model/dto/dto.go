package dto

import (
	"iter"

	"guesthouse/internal/domains/booking/engine"
	"guesthouse/shared/constant"
)

type DayResponse struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

type CalendarResponse struct {
	RoomID string        `json:"room_id"`
	From   string        `json:"from"`
	Days   []DayResponse `json:"days"`
}

func (r *CalendarResponse) FromEngine(roomID string, days iter.Seq[engine.Day]) {
	r.RoomID = roomID
	r.Days = []DayResponse{}

	for day := range days {
		r.Days = append(r.Days, DayResponse{
			Date:   day.Date.Format(constant.DayFormat),
			Status: string(day.Status),
		})
	}

	if len(r.Days) > 0 {
		r.From = r.Days[0].Date
	}
}
