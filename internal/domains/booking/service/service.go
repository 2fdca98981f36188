package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/internal/domains/booking/engine"
	"guesthouse/internal/domains/booking/model"
	"guesthouse/internal/domains/booking/model/dto"
	"guesthouse/internal/domains/booking/repository"
	"guesthouse/internal/domains/calendar/snapshot"
	notification "guesthouse/internal/domains/notification/service"
	roomModel "guesthouse/internal/domains/room/model"
	roomService "guesthouse/internal/domains/room/service"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
	gDto "guesthouse/shared/dto"
	"guesthouse/shared/failure"
	"guesthouse/shared/metrics"
)

const cacheGetBooking = "booking:get"

var errUnknownSortField = errors.New("cannot sort bookings by this field")

const (
	outcomeAccepted     = "accepted"
	outcomeInvalidRange = "invalid_range"
	outcomeRoomDisabled = "room_disabled"
	outcomeDateConflict = "date_conflict"
	outcomeInvalid      = "invalid"
	outcomeError        = "error"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter dto.BookingFilter) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
	Dashboard(ctx context.Context) (dto.DashboardResponse, error)
	// Export renders the filtered bookings as an xlsx workbook.
	Export(ctx context.Context, filter dto.BookingFilter) ([]byte, error)
}

type serviceImpl struct {
	repo     repository.Booking
	rooms    roomService.Room
	snapshot *snapshot.Refresher
	sink     notification.Sink
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(
	repo repository.Booking,
	rooms roomService.Room,
	snapshot *snapshot.Refresher,
	sink notification.Sink,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:     repo,
		rooms:    rooms,
		snapshot: snapshot,
		sink:     sink,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func cacheKey(id string) string {
	return cacheGetBooking + ":" + id
}

// rejection turns an engine refusal into the failure shown to the caller.
func rejection(err error) error {
	switch {
	case errors.Is(err, engine.ErrInvalidRange):
		return failure.BadRequest(err) // nolint:wrapcheck
	case errors.Is(err, engine.ErrRoomDisabled):
		return failure.Forbidden(err.Error()) // nolint:wrapcheck
	case errors.Is(err, engine.ErrDateConflict):
		return failure.Conflict(err.Error()) // nolint:wrapcheck
	default:
		return err
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return outcomeAccepted
	case errors.Is(err, engine.ErrInvalidRange):
		return outcomeInvalidRange
	case errors.Is(err, engine.ErrRoomDisabled):
		return outcomeRoomDisabled
	case errors.Is(err, engine.ErrDateConflict):
		return outcomeDateConflict
	case failure.IsClientError(err):
		return outcomeInvalid
	default:
		return outcomeError
	}
}

// refresh reloads the calendar snapshot after a write. The write already succeeded, so a failure
// is only logged; the scheduled refresh catches up.
func (s *serviceImpl) refresh(ctx context.Context) {
	if _, err := s.snapshot.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to refresh booking snapshot after write")
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	defer func() {
		metrics.IncBookingRequested(req.RoomID, outcome(err))
	}()

	gate, setting, err := s.rooms.Gate(ctx, req.RoomID)
	if err != nil {
		log.Error().Err(err).Str("room", req.RoomID).Msg("failed to read room gate")

		return res, err //nolint:wrapcheck
	}

	room, err := roomModel.FindRoom(req.RoomID)
	if err != nil {
		return res, failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
	}

	if req.Guests > room.Capacity {
		return res, failure.BadRequestFromString(fmt.Sprintf("room sleeps at most %d guests", room.Capacity)) // nolint:wrapcheck
	}

	booking, err := req.ToModel(setting.Name)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	scope.SetAttributes(map[string]any{
		"booking.room_id":   booking.RoomID,
		"booking.check_in":  booking.CheckIn,
		"booking.check_out": booking.CheckOut,
		"booking.guests":    booking.Guests,
	})

	existing, err := s.snapshot.Refresh(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load bookings for conflict check")

		return res, fmt.Errorf("failed to load bookings: %w", err)
	}

	candidate := engine.Candidate{
		RoomID:   booking.RoomID,
		CheckIn:  booking.CheckIn,
		CheckOut: booking.CheckOut,
	}

	if err = engine.CanAccept(candidate, &gate, existing); err != nil {
		log.Info().Err(err).Str("room", booking.RoomID).Msg("booking request rejected")

		return res, rejection(err)
	}

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.refresh(ctx)

	go func() {
		c := context.WithoutCancel(ctx)

		s.sink.OnBookingCreated(c, booking)
	}()

	log.Info().Str("id", booking.ID).Str("room", booking.RoomID).Msg("booking request created")

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter dto.BookingFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.snapshot.Refresh(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	matched := make([]model.Booking, 0, len(bookings))

	for _, booking := range bookings {
		if filter.Match(booking) {
			matched = append(matched, booking)
		}
	}

	if err = order(matched, params); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	res.FromModels(paginate(matched, params), len(matched), params.Limit)

	return res, nil
}

var sortKeys = map[string]func(model.Booking) time.Time{
	constant.FieldCreatedAt: func(b model.Booking) time.Time { return b.CreatedAt },
	"check_in":              func(b model.Booking) time.Time { return b.CheckIn },
	"check_out":             func(b model.Booking) time.Time { return b.CheckOut },
}

// order sorts bookings in place. An empty sort_by means created_at and an empty sort_dir means
// descending; equal keys keep snapshot order.
func order(bookings []model.Booking, params gDto.QueryParams) error {
	sortBy := cmp.Or(params.SortBy, constant.DefaultValueSortBy)

	key, ok := sortKeys[sortBy]
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownSortField, sortBy)
	}

	desc := cmp.Or(params.SortDir, constant.DefaultValueSortDir) == gDto.SortDirDesc

	slices.SortStableFunc(bookings, func(a, b model.Booking) int {
		if desc {
			return key(b).Compare(key(a))
		}

		return key(a).Compare(key(b))
	})

	return nil
}

func paginate(bookings []model.Booking, params gDto.QueryParams) []model.Booking {
	start, end := params.Window(len(bookings))

	return bookings[start:end]
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key := cacheKey(id)

	if err := s.cache.Get(ctx, key, &res); err == nil {
		log.Info().Str("cacheKey", key).Msg("cache hit for booking")

		if res.ID == "" {
			return res, failure.NotFound("booking not found") // nolint:wrapcheck
		}

		return res, nil
	}

	booking, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	res.FromModel(booking)

	// A write that landed after the read above owns the key; never overwrite it with this copy.
	if _, err := s.cache.SaveIfAbsent(ctx, key, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save booking to cache")
	}

	return res, nil
}

// overwrite replaces the cached copy of a booking once a write is committed. An empty value marks
// the booking as deleted. If Redis refuses the value the entry is dropped so readers go to the store.
func (s *serviceImpl) overwrite(ctx context.Context, id string, value dto.BookingResponse) {
	c := context.WithoutCancel(ctx)
	key := cacheKey(id)

	err := s.cache.Save(c, key, value, s.cfg.Cache.TTL)
	if err == nil {
		return
	}

	log.Error().Err(err).Str("cacheKey", key).Msg("failed to overwrite cached booking")

	if err := s.cache.Delete(c, key); err != nil {
		log.Error().Err(err).Str("cacheKey", key).Msg("failed to delete booking from cache")
	}
}

func (s *serviceImpl) UpdateStatus(ctx context.Context, id string, req dto.UpdateStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	defer func() {
		metrics.IncStatusChanged(req.Status, outcome(err))
	}()

	status, err := model.ParseStatus(req.Status)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	booking, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if err = booking.Status.TransitionTo(status); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if status == model.StatusConfirmed {
		existing, err := s.snapshot.Refresh(ctx)
		if err != nil {
			log.Error().Err(err).Msg("failed to load bookings for conflict check")

			return res, fmt.Errorf("failed to load bookings: %w", err)
		}

		candidate := engine.Candidate{
			RoomID:    booking.RoomID,
			CheckIn:   booking.CheckIn,
			CheckOut:  booking.CheckOut,
			ExcludeID: booking.ID,
		}

		// Confirmation skips the room gate: the request was accepted while the room was open.
		if err := engine.CanAccept(candidate, nil, existing); err != nil {
			log.Info().Err(err).Str("id", id).Msg("confirmation rejected")

			return res, rejection(err)
		}
	}

	err = s.repo.SetStatus(ctx, id, status)
	if errors.Is(err, repository.ErrNotFound) {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = status
	res.FromModel(booking)

	s.overwrite(ctx, id, res)
	s.refresh(ctx)

	go func() {
		s.sink.OnStatusChanged(context.WithoutCancel(ctx), id, status)
	}()

	log.Info().Str("id", id).Stringer("status", status).Msg("booking status updated")

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.repo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	metrics.IncBookingDeleted()

	s.overwrite(ctx, id, dto.BookingResponse{})
	s.refresh(ctx)

	log.Info().Str("id", id).Msg("booking deleted")

	return nil
}

func (s *serviceImpl) Dashboard(ctx context.Context) (res dto.DashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Dashboard")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.snapshot.Refresh(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for dashboard")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromEngine(engine.CountStatuses(bookings), engine.Leaderboard(bookings))

	return res, nil
}

func (s *serviceImpl) Export(ctx context.Context, filter dto.BookingFilter) (res []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.snapshot.Refresh(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for export")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	matched := make([]model.Booking, 0, len(bookings))

	for _, booking := range bookings {
		if filter.Match(booking) {
			matched = append(matched, booking)
		}
	}

	res, err = workbook(matched)
	if err != nil {
		log.Error().Err(err).Msg("failed to render bookings workbook")

		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	return res, nil
}
