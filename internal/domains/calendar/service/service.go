package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/internal/domains/booking/engine"
	"guesthouse/internal/domains/calendar/model/dto"
	"guesthouse/internal/domains/calendar/snapshot"
	roomModel "guesthouse/internal/domains/room/model"
	"guesthouse/shared/constant"
	"guesthouse/shared/failure"
	"guesthouse/shared/timezone"
)

type Calendar interface {
	// Calendar classifies the next days of a room starting today. A non-positive days asks for the
	// whole horizon; anything above the horizon is capped to it.
	Calendar(ctx context.Context, roomID string, days int) (dto.CalendarResponse, error)
}

type serviceImpl struct {
	snapshot *snapshot.Refresher
	horizon  int
	otel     otel.Otel
}

func New(cfg *config.Config, snapshot *snapshot.Refresher, otel otel.Otel) Calendar {
	return &serviceImpl{
		snapshot: snapshot,
		horizon:  cfg.Booking.CalendarHorizonDays,
		otel:     otel,
	}
}

func (s *serviceImpl) Calendar(ctx context.Context, roomID string, days int) (res dto.CalendarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".calendar.Calendar")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = roomModel.FindRoom(roomID); err != nil {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if days <= 0 || days > s.horizon {
		days = s.horizon
	}

	bookings, err := s.snapshot.Bookings(ctx)
	if err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("failed to read bookings for calendar")

		return res, fmt.Errorf("failed to read bookings: %w", err)
	}

	res.FromEngine(roomID, engine.Calendar(roomID, timezone.Today(), days, bookings))

	return res, nil
}
