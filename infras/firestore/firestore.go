package firestore

import (
	"context"

	gcpFirestore "cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"guesthouse/config"
)

// New returns a Firestore client for the configured project. It returns nil when bookings are kept
// in Postgres.
func New(cfg *config.Config) *gcpFirestore.Client {
	if cfg.DB.Driver != config.DriverFirestore {
		return nil
	}

	ctx := context.Background()

	var options []option.ClientOption
	if cfg.DB.Firestore.CredentialsFile != "" {
		options = append(options, option.WithCredentialsFile(cfg.DB.Firestore.CredentialsFile))
	}

	var appConfig *firebase.Config
	if cfg.DB.Firestore.ProjectID != "" {
		appConfig = &firebase.Config{ProjectID: cfg.DB.Firestore.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appConfig, options...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Firebase app")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Firestore client")
	}

	log.Info().
		Str("project", cfg.DB.Firestore.ProjectID).
		Str("collection", cfg.DB.Firestore.Collection).
		Msg("Connected to Firestore")

	return client
}
