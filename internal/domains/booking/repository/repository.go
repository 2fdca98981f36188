package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	gcpFirestore "cloud.google.com/go/firestore"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/infras/postgres"
	"guesthouse/internal/domains/booking/model"
	gRepo "guesthouse/shared/repository"
)

// ErrNotFound is returned when no booking has the requested id.
var ErrNotFound = gRepo.ErrNotFound

// Booking is the booking store. A returned error means nothing was changed.
type Booking interface {
	Insert(ctx context.Context, booking model.Booking) error
	Get(ctx context.Context, id string) (model.Booking, error)
	// ListAll returns every booking, newest first, with check-in and check-out reduced to dates.
	ListAll(ctx context.Context) ([]model.Booking, error)
	SetStatus(ctx context.Context, id string, status model.Status) error
	Delete(ctx context.Context, id string) error
}

// New picks the store implementation for the configured driver.
func New(cfg *config.Config, db *postgres.Connection, client *gcpFirestore.Client, otel otel.Otel) Booking {
	if cfg.DB.Driver == config.DriverFirestore {
		return NewFirestore(client, cfg.DB.Firestore.Collection, otel)
	}

	return NewPostgres(db, otel)
}
