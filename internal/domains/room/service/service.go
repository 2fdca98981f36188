package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/booking/engine"
	"guesthouse/internal/domains/room/model"
	"guesthouse/internal/domains/room/model/dto"
	"guesthouse/internal/domains/room/repository"
	"guesthouse/shared/constant"
	"guesthouse/shared/failure"
	"guesthouse/shared/timezone"
)

type Room interface {
	GetAll(ctx context.Context, enabled *bool) ([]dto.RoomResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (dto.RoomResponse, error)
	// Gate returns the acceptance gate for new requests and the room's current setting.
	Gate(ctx context.Context, id string) (engine.RoomGate, model.RoomSetting, error)
	// Watch keeps the cached settings in step with saves made by other instances until stop is
	// called or ctx is done.
	Watch(ctx context.Context) (stop func())
}

type serviceImpl struct {
	repo repository.Settings
	otel otel.Otel

	mu      sync.RWMutex
	current model.Settings
}

func New(repo repository.Settings, otel otel.Otel) Room {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) settings(ctx context.Context) (model.Settings, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current != nil {
		return current.Clone(), nil
	}

	loaded, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load room settings: %w", err)
	}

	s.store(loaded)

	return loaded.Clone(), nil
}

func (s *serviceImpl) store(settings model.Settings) {
	s.mu.Lock()
	s.current = settings.Clone()
	s.mu.Unlock()
}

func gateFor(setting model.RoomSetting) (engine.RoomGate, error) {
	cutoff, err := setting.Cutoff()
	if err != nil {
		return engine.RoomGate{}, err
	}

	return engine.RoomGate{
		Enabled:      setting.Enabled,
		BookingUntil: cutoff,
		Today:        timezone.Today(),
	}, nil
}

func response(room model.Room, setting model.RoomSetting) (res dto.RoomResponse, err error) {
	gate, err := gateFor(setting)
	if err != nil {
		return res, err
	}

	res.FromModel(room, setting, gate)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, enabled *bool) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	settings, err := s.settings(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	res = make([]dto.RoomResponse, 0, len(model.Catalogue))

	for _, room := range model.Catalogue {
		setting := settings[room.ID]
		if enabled != nil && setting.Enabled != *enabled {
			continue
		}

		item, err := response(room, setting)
		if err != nil {
			return nil, fmt.Errorf("failed to build room %s: %w", room.ID, err)
		}

		res = append(res, item)
	}

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := model.FindRoom(id)
	if err != nil {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	settings, err := s.settings(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	return response(room, settings[room.ID])
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Empty() {
		return res, failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	if req.ClearBookingUntil && req.BookingUntil != nil {
		return res, failure.BadRequestFromString("booking_until and clear_booking_until cannot be combined") // nolint:wrapcheck
	}

	room, err := model.FindRoom(id)
	if err != nil {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	// Read the store, not the cache, so that a save from another instance is not overwritten.
	settings, err := s.repo.Load(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load room settings")

		return res, fmt.Errorf("failed to load room settings: %w", err)
	}

	settings[room.ID] = req.Apply(settings[room.ID])

	if err = s.repo.Save(ctx, settings); err != nil {
		log.Error().Err(err).Str("room", room.ID).Msg("failed to save room settings")

		return res, fmt.Errorf("failed to save room settings: %w", err)
	}

	s.store(settings)

	log.Info().Str("room", room.ID).Bool("enabled", settings[room.ID].Enabled).Str("booking_until", settings[room.ID].BookingUntil).Msg("room settings updated")

	return response(room, settings[room.ID])
}

func (s *serviceImpl) Gate(ctx context.Context, id string) (gate engine.RoomGate, setting model.RoomSetting, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Gate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := model.FindRoom(id)
	if err != nil {
		return gate, setting, failure.BadRequestFromString("room does not exist") // nolint:wrapcheck
	}

	settings, err := s.settings(ctx)
	if err != nil {
		return gate, setting, fmt.Errorf("failed to load room settings: %w", err)
	}

	setting, ok := settings[room.ID]
	if !ok {
		return gate, setting, errors.New("room settings missing for " + room.ID)
	}

	gate, err = gateFor(setting)
	if err != nil {
		return gate, setting, fmt.Errorf("failed to read room cutoff: %w", err)
	}

	return gate, setting, nil
}

func (s *serviceImpl) Watch(ctx context.Context) func() {
	return s.repo.OnSettingsChanged(ctx, func(settings model.Settings) {
		s.store(settings)

		log.Info().Msg("room settings reloaded after change")
	})
}
