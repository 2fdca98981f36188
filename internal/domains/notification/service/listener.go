package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"guesthouse/config"
	"guesthouse/infras/kafka"
	"guesthouse/internal/domains/notification/model"
)

// Listener consumes booking events and hands them to its handlers. The default handlers only log
// the event; mail delivery is left to whoever replaces them.
type Listener struct {
	client        kafka.Client
	consumerGroup string
	createdTopic  string
	statusTopic   string

	OnCreated func(model.BookingCreated)
	OnStatus  func(model.StatusChanged)
}

func NewListener(cfg *config.Config, client kafka.Client) *Listener {
	return &Listener{
		client:        client,
		consumerGroup: cfg.Kafka.ConsumerGroup,
		createdTopic:  cfg.Kafka.Topic.BookingCreated,
		statusTopic:   cfg.Kafka.Topic.BookingStatus,
		OnCreated: func(event model.BookingCreated) {
			log.Info().
				Str("id", event.ID).
				Str("room", event.RoomID).
				Str("guest", event.GuestEmail).
				Str("check_in", event.CheckIn).
				Str("check_out", event.CheckOut).
				Msg("new booking request")
		},
		OnStatus: func(event model.StatusChanged) {
			log.Info().Str("id", event.ID).Str("status", event.Status).Msg("booking status changed")
		},
	}
}

// Run blocks until ctx is done.
func (l *Listener) Run(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()

		l.client.Consume(ctx, l.consumerGroup, l.createdTopic, func(message kafkaGo.Message) {
			event, err := kafka.DecodeKafkaMessage[model.BookingCreated](message)
			if err != nil {
				return
			}

			l.OnCreated(event)
		})
	}()

	go func() {
		defer wg.Done()

		l.client.Consume(ctx, l.consumerGroup, l.statusTopic, func(message kafkaGo.Message) {
			event, err := kafka.DecodeKafkaMessage[model.StatusChanged](message)
			if err != nil {
				return
			}

			l.OnStatus(event)
		})
	}()

	wg.Wait()
}
