package di

import (
	"context"

	gcpFirestore "cloud.google.com/go/firestore"
	"github.com/rs/zerolog/log"

	"guesthouse/infras/kafka"
	"guesthouse/infras/otel"
	"guesthouse/infras/postgres"
	"guesthouse/internal/domains/calendar/snapshot"
	roomService "guesthouse/internal/domains/room/service"
	"guesthouse/transport/http"
)

// Server bundles the HTTP server with the background work that shares its lifetime.
type Server struct {
	HTTP      *http.HTTP
	Snapshot  *snapshot.Refresher
	Rooms     roomService.Room
	Otel      otel.Otel
	DB        *postgres.Connection
	Firestore *gcpFirestore.Client
	Kafka     kafka.Client
}

// Run starts the booking snapshot refresher and the room settings watch, serves HTTP until ctx is
// cancelled, then releases everything it holds.
func (s *Server) Run(ctx context.Context) error {
	s.Snapshot.Start(ctx)
	defer s.Snapshot.Stop()

	stopWatch := s.Rooms.Watch(ctx)
	defer stopWatch()

	defer s.close()

	return s.HTTP.Serve(ctx) // nolint:wrapcheck
}

func (s *Server) close() {
	s.DB.Close()

	if s.Firestore != nil {
		if err := s.Firestore.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close firestore client")
		}
	}

	if s.Kafka != nil {
		if err := s.Kafka.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close kafka client")
		}
	}

	if err := s.Otel.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("failed to flush traces")
	}
}
