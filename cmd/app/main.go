package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"guesthouse/config"
	"guesthouse/di"
	"guesthouse/helper"
	"guesthouse/shared/logger"
	"guesthouse/shared/password"
)

var errKafkaDisabled = errors.New("kafka is disabled, set KAFKA_ENABLE=true to run the listener")

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the booking HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Get()

			if cfg.DB.Postgres.AutoMigrate && cfg.DB.Driver == config.DriverPostgres {
				if err := helper.Run(cfg, helper.ActionUp); err != nil {
					return fmt.Errorf("failed to migrate database: %w", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return di.InitializeServer().Run(ctx) //nolint:wrapcheck
		},
	}
}

func notifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "notify",
		Short: "Consume booking events and log guest notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !config.Get().Kafka.Enable {
				return errKafkaDisabled
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			di.InitializeListener().Run(ctx)

			return nil
		},
	}
}

func hashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash to put in APP_ADMIN_PASSWORD_HASH",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plain := ""
			if len(args) == 1 {
				plain = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("failed to read password: %w", err)
				}

				plain = strings.TrimSpace(line)
			}

			hash, err := password.Hash(plain)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			cmd.Println(hash)

			return nil
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:           "guesthouse",
		Short:         "Guesthouse booking service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			cfg := config.Get()

			logger.InitLogger(cfg)
			logger.SetLogLevel(cfg)
		},
	}

	root.AddCommand(serveCommand(), notifyCommand(), hashPasswordCommand())

	if err := root.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
