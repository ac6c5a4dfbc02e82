package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/careers-portal/internal/db"
	"github.com/jonathan/careers-portal/internal/observability"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down|status",
		Short:     "Apply, roll back or list database migrations",
		Long:      "up applies every pending migration, down rolls back the most recent one, status lists all of them.",
		ValidArgs: []string{"up", "down", "status"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(*configPath)
			if err != nil {
				return err
			}
			if err := requireDatabase(cfg); err != nil {
				return err
			}

			ctx := cmd.Context()
			database, err := db.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()

			printer := observability.NewPrinter(cmd.OutOrStdout())
			direction := args[0]

			if direction == "status" {
				statuses, err := database.MigrationStatuses(ctx)
				if err != nil {
					return err
				}
				printer.PrintMigrationStatus(statuses)
				return nil
			}

			versions, err := database.Migrate(ctx, direction)
			if err != nil {
				return err
			}
			logger.WithField("direction", direction).WithField("versions", versions).Info("migrations complete")
			printer.PrintMigrationResult(direction, versions)
			return nil
		},
	}
}
