package cmd

import (
	"github.com/spf13/cobra"
	"github.com/yigit/alumniportal/internal/server"
)

func newServeCommand(configPath *string) *cobra.Command {
	var skipMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server and begin accepting API requests.

Pending migrations are applied first unless --skip-migrate is set.
The server shuts down gracefully on SIGINT/SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := server.NewServer(cmd.Context(), server.Options{
				ConfigPath: *configPath,
				Migrate:    !skipMigrate,
			})
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&skipMigrate, "skip-migrate", false, "do not apply pending migrations on startup")
	return cmd
}
