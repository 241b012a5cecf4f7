package main

import (
	"github.com/healthfair/backend/internal/infrastructure/clients/postgres"
	"github.com/healthfair/backend/migrations"
	"github.com/healthfair/backend/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func migrateCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := postgres.NewClient(ctx, &cfg.Database)
			if err != nil {
				return err
			}
			defer client.Close()

			applied, err := postgres.NewMigrator(client, migrations.Files).Up(ctx)
			if err != nil {
				return err
			}

			log.Info().Int("applied", applied).Msg("migrations complete")
			return nil
		},
	}
}
