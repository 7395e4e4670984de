package cmd

import (
	"github.com/spf13/cobra"
	appMigrations "github.com/yigit/alumniportal/internal/app/migrations"
	"github.com/yigit/alumniportal/internal/bootstrap"
)

func newMigrateCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
			if err != nil {
				return err
			}
			return bootstrap.MigrateDatabase(cfg, lgr)
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
			if err != nil {
				return err
			}
			return appMigrations.NewMigrator(cfg.GetPostgresConnectionString(), lgr).Down(steps)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	cmd.AddCommand(up, down)
	return cmd
}
