package redis

import (
	"context"
	"net"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"guesthouse/config"
)

const pingTimeout = 3 * time.Second

// New connects to the primary Redis used by the booking cache and the rate limiter. It pings up to
// MaxRetry times and exits the process when Redis never answers.
func New(config *config.Config) *goRedis.Client {
	primary := config.Cache.Redis.Primary

	client := goRedis.NewClient(&goRedis.Options{
		Addr:     net.JoinHostPort(primary.Host, primary.Port),
		Password: primary.Password,
		DB:       primary.DB,
	})

	attempts := max(config.Cache.Redis.MaxRetry, 1)
	wait := time.Duration(config.Cache.Redis.RetryWaitTime) * time.Second

	for attempt := range attempts {
		if err := ping(client); err != nil {
			log.Error().Err(err).Int("attempt", attempt+1).Msg("Failed to connect to Redis, retrying")
			time.Sleep(wait)

			continue
		}

		log.Info().
			Int("db", primary.DB).
			Str("host", primary.Host).
			Str("port", primary.Port).
			Msg("Connected to Redis")

		return client
	}

	log.Fatal().Str("host", primary.Host).Msg("Exhausted Redis connection attempts")

	return nil
}

func ping(client *goRedis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	return client.Ping(ctx).Err() //nolint:wrapcheck
}
