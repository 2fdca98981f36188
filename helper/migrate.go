package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"

	"guesthouse/config"
	"guesthouse/infras/postgres"
)

const migrationsSource = "file://migrations/postgres"

type Action string

const (
	ActionUp     Action = "up"
	ActionDown   Action = "down"
	ActionStepUp Action = "step-up"
	ActionDrop   Action = "drop"
)

var (
	ErrUnknownAction    = errors.New("unknown migration action")
	ErrNothingToMigrate = errors.New("bookings are kept in firestore, nothing to migrate")
)

func connectionString(cfg *config.Config) string {
	write := cfg.DB.Postgres.Write

	descriptor := postgres.Descriptor(
		write.Username,
		write.Password,
		write.Host,
		write.Port,
		postgres.DBName(*cfg, write.Name),
		write.SSLMode,
	)

	if cfg.DB.Postgres.MigrationTable != "" {
		descriptor += "&x-migrations-table=" + url.QueryEscape(cfg.DB.Postgres.MigrationTable)
	}

	return descriptor
}

// Run applies one migration action against the write database of the booking store.
func Run(cfg *config.Config, action Action) error {
	if cfg.DB.Driver == config.DriverFirestore {
		return ErrNothingToMigrate
	}

	mig, err := migrate.New(migrationsSource, connectionString(cfg))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	switch action {
	case ActionUp:
		err = mig.Up()
	case ActionDown:
		err = mig.Steps(-1)
	case ActionStepUp:
		err = mig.Steps(1)
	case ActionDrop:
		err = mig.Down()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	log.Info().Str("action", string(action)).Msg("Database migration completed")

	return nil
}
