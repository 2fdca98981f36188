package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"guesthouse/infras/otel"
	"guesthouse/internal/domains/room/model"
	"guesthouse/shared/cache"
	"guesthouse/shared/constant"
)

type redisSettings struct {
	cache cache.RedisCache
	otel  otel.Otel
}

// New keeps the settings document in Redis and fans changes out over Pub/Sub, so every instance of
// the service sees an operator's toggle.
func New(cache cache.RedisCache, otel otel.Otel) Settings {
	return &redisSettings{
		cache: cache,
		otel:  otel,
	}
}

func decode(raw string) (model.Settings, error) {
	var settings model.Settings

	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return nil, fmt.Errorf("failed to decode room settings: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid room settings: %w", err)
	}

	return settings, nil
}

func (r *redisSettings) Load(ctx context.Context) (settings model.Settings, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var raw string

	err = r.cache.Get(ctx, model.SettingsKey, &raw)
	if cache.IsMiss(err) {
		return model.DefaultSettings(), nil
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to load room settings")

		return nil, fmt.Errorf("failed to load room settings: %w", err)
	}

	settings, err = decode(raw)
	if err != nil {
		log.Warn().Err(err).Msg("room settings unreadable, using defaults")

		return model.DefaultSettings(), nil
	}

	return settings, nil
}

func (r *redisSettings) Save(ctx context.Context, settings model.Settings) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = settings.Validate(); err != nil {
		return fmt.Errorf("invalid room settings: %w", err)
	}

	if err = r.cache.Save(ctx, model.SettingsKey, settings, 0); err != nil {
		log.Error().Err(err).Msg("failed to save room settings")

		return fmt.Errorf("failed to save room settings: %w", err)
	}

	if err := r.cache.Publish(ctx, model.SettingsChannel, settings); err != nil {
		log.Warn().Err(err).Msg("failed to announce room settings change")
	}

	return nil
}

func (r *redisSettings) OnSettingsChanged(ctx context.Context, callback func(model.Settings)) func() {
	return r.cache.Subscribe(ctx, model.SettingsChannel, func(payload string) {
		settings, err := decode(payload)
		if err != nil {
			log.Warn().Err(err).Msg("ignoring unreadable room settings change")

			return
		}

		callback(settings)
	})
}
