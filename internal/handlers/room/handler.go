package room

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"guesthouse/infras/otel"
	calendarService "guesthouse/internal/domains/calendar/service"
	"guesthouse/internal/domains/room/model/dto"
	"guesthouse/internal/domains/room/service"
	"guesthouse/shared"
	"guesthouse/shared/constant"
	"guesthouse/shared/failure"
	"guesthouse/shared/validator"
	"guesthouse/transport/http/response"
)

const queryParamEnabled = "enabled"

type Handler struct {
	service  service.Room
	calendar calendarService.Calendar
	otel     otel.Otel
}

func New(service service.Room, calendar calendarService.Calendar, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		calendar: calendar,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/{id}/calendar", handler.GetCalendar)
	})
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Patch("/{id}", handler.UpdateRoom)
	})
}

// GetRooms lists the rooms with their settings, optionally narrowed by ?enabled=true|false.
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	rooms, err := handler.service.GetAll(ctx, shared.ConvertStringToBool(r.URL.Query().Get(queryParamEnabled)))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get rooms")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetCalendar classifies the coming days of one room; ?days= defaults to the configured horizon.
func (handler *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendar")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	days := 0

	if value := r.URL.Query().Get(constant.RequestParamDays); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			response.WithError(w, failure.BadRequestFromString("days must be a number"))

			return
		}

		days = parsed
	}

	calendar, err := handler.calendar.Calendar(ctx, id, days)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room", id).Msg("failed to get calendar")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, calendar)
}

func (handler *Handler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRoom")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateRoomRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	room, err := handler.service.Update(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("room", id).Msg("failed to update room")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room settings updated")

	response.WithJSON(w, http.StatusOK, room)
}
