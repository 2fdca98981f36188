package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/sink_mock.go -package=mocks

import (
	"context"

	"github.com/rs/zerolog/log"

	"guesthouse/config"
	"guesthouse/infras/kafka"
	"guesthouse/infras/otel"
	bookingModel "guesthouse/internal/domains/booking/model"
	"guesthouse/internal/domains/notification/model"
	"guesthouse/shared/constant"
	"guesthouse/shared/timezone"
)

// Sink receives booking events. Delivery failures are logged and never returned, so callers can
// invoke it without waiting.
type Sink interface {
	OnBookingCreated(ctx context.Context, booking bookingModel.Booking)
	OnStatusChanged(ctx context.Context, id string, status bookingModel.Status)
}

// New publishes events to Kafka, or drops them when Kafka is disabled.
func New(cfg *config.Config, client kafka.Client, otel otel.Otel) Sink {
	if client == nil {
		return noopSink{}
	}

	return &kafkaSink{
		client:       client,
		createdTopic: cfg.Kafka.Topic.BookingCreated,
		statusTopic:  cfg.Kafka.Topic.BookingStatus,
		otel:         otel,
	}
}

type noopSink struct{}

func (noopSink) OnBookingCreated(_ context.Context, booking bookingModel.Booking) {
	log.Debug().Str("id", booking.ID).Msg("booking created, notifications disabled")
}

func (noopSink) OnStatusChanged(_ context.Context, id string, status bookingModel.Status) {
	log.Debug().Str("id", id).Stringer("status", status).Msg("booking status changed, notifications disabled")
}

type kafkaSink struct {
	client       kafka.Client
	createdTopic string
	statusTopic  string
	otel         otel.Otel
}

func (k *kafkaSink) OnBookingCreated(ctx context.Context, booking bookingModel.Booking) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".notification.OnBookingCreated")
	defer scope.End()

	var event model.BookingCreated
	event.FromModel(booking)

	err := k.client.SendMessages(ctx, k.createdTopic, kafka.Message{Key: booking.ID, Value: event})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", booking.ID).Msg("failed to publish booking created event")
	}
}

func (k *kafkaSink) OnStatusChanged(ctx context.Context, id string, status bookingModel.Status) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".notification.OnStatusChanged")
	defer scope.End()

	event := model.StatusChanged{
		ID:        id,
		Status:    status.String(),
		ChangedAt: timezone.Now(),
	}

	err := k.client.SendMessages(ctx, k.statusTopic, kafka.Message{Key: id, Value: event})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to publish booking status event")
	}
}
