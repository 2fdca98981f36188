package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"guesthouse/config"
	"guesthouse/helper"
	"guesthouse/shared/logger"
)

func command(action helper.Action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(action),
		Short: short,
		RunE: func(_ *cobra.Command, _ []string) error {
			return helper.Run(config.Get(), action) //nolint:wrapcheck
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the bookings schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			cfg := config.Get()

			logger.InitLogger(cfg)
			logger.SetLogLevel(cfg)
		},
	}

	root.AddCommand(
		command(helper.ActionUp, "Apply every pending migration"),
		command(helper.ActionDown, "Roll back the latest migration"),
		command(helper.ActionStepUp, "Apply the next pending migration"),
		command(helper.ActionDrop, "Roll back every migration"),
	)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(1)
	}
}
