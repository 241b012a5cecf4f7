package main

import (
	"context"
	"fmt"
	"os"

	"github.com/healthfair/backend/internal/infrastructure/observability"
	"github.com/healthfair/backend/pkg/config"
	"github.com/healthfair/backend/pkg/secrets"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "healthfair",
		Short:         "Health fair registration and queue API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a config file (env vars take precedence)")

	loadConfig := func() (*config.Config, error) {
		result, err := secrets.ApplyToEnv(rootCmd.Context(), secrets.VaultConfigFromEnv())
		if err != nil {
			return nil, fmt.Errorf("failed to load Vault secrets: %w", err)
		}
		cfg, err := config.LoadFile(configFile)
		if err != nil {
			return nil, err
		}
		observability.InitLogger(cfg.App.Name, cfg.App.Env, cfg.App.LogLevel)
		if result.Loaded > 0 || result.Skipped > 0 {
			log.Info().Int("loaded", result.Loaded).Int("skipped", result.Skipped).Msg("applied Vault secrets")
		}
		return cfg, nil
	}

	rootCmd.AddCommand(serveCmd(loadConfig))
	rootCmd.AddCommand(migrateCmd(loadConfig))
	rootCmd.AddCommand(seedCmd(loadConfig))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
