package main

import (
	"context"
	"strings"

	"github.com/healthfair/backend/internal/adapters/database"
	"github.com/healthfair/backend/internal/application/services"
	"github.com/healthfair/backend/internal/domain/entities"
	"github.com/healthfair/backend/internal/infrastructure/clients/postgres"
	"github.com/healthfair/backend/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// defaultServices is the catalogue a fresh deployment starts with
var defaultServices = []entities.ServiceDefinition{
	{Name: "Know Your Numbers", Description: "Blood pressure, glucose and BMI screening", DurationMinutes: 10, IsIntakeGate: true},
	{Name: "Dental", Description: "Dental check-up", DurationMinutes: 15},
	{Name: "Optician", Description: "Eye test", DurationMinutes: 15},
	{Name: "ECG", Description: "Electrocardiogram", DurationMinutes: 20},
	{Name: "Prescriptions", Description: "Medication review and prescriptions", DurationMinutes: 10},
	{Name: "Prognosis", Description: "Consultation on screening results", DurationMinutes: 15},
}

func seedCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default service catalogue",
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

			created, err := seedServices(ctx, services.NewServiceCatalogService(database.NewServiceAdapter(client)))
			if err != nil {
				return err
			}
			log.Info().Int("created", created).Msg("seed complete")
			return nil
		},
	}
}

// seedServices creates the default services missing by name
func seedServices(ctx context.Context, catalog *services.ServiceCatalogService) (int, error) {
	existing, err := catalog.List(ctx)
	if err != nil {
		return 0, err
	}
	names := make(map[string]struct{}, len(existing))
	for _, svc := range existing {
		names[strings.ToLower(svc.Name)] = struct{}{}
	}

	created := 0
	for _, def := range defaultServices {
		if _, ok := names[strings.ToLower(def.Name)]; ok {
			continue
		}
		svc := def
		if err := catalog.Create(ctx, &svc); err != nil {
			return created, err
		}
		log.Info().Str("service", svc.Name).Bool("intake", svc.IsIntakeGate).Msg("service created")
		created++
	}
	return created, nil
}
