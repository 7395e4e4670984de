package cmd

import (
	"os"

	"github.com/spf13/cobra"
	appRepos "github.com/yigit/alumniportal/internal/app/repositories"
	"github.com/yigit/alumniportal/internal/bootstrap"
	"github.com/yigit/alumniportal/internal/pkg/auth"
	"github.com/yigit/alumniportal/internal/seed"
)

func newSeedCommand(configPath *string) *cobra.Command {
	opts := seed.Options{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample companies, events, internships and accounts",
		Long: `Insert sample data into a migrated database. Existing rows are kept,
so the command can be run repeatedly.

The staff account is only created when an admin password is given, either
with --admin-password or the ADMIN_PASSWORD environment variable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
			if err != nil {
				return err
			}

			database, err := bootstrap.SetupDatabase(cmd.Context(), cfg, lgr, true)
			if err != nil {
				return err
			}
			defer database.Close()

			seeder := seed.NewSeeder(appRepos.NewRepositories(database.Pool), auth.NewPasswordHasher(cfg.Auth.BcryptCost), lgr)
			return seeder.Run(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&opts.AdminUsername, "admin-username", "admin", "username of the staff account")
	cmd.Flags().StringVar(&opts.AdminPassword, "admin-password", os.Getenv("ADMIN_PASSWORD"), "password of the staff account")
	return cmd
}
