package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/yigit/alumniportal/internal/pkg/logger"
)

// Execute runs the root command; this is called by main.main().
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		logger.Error().Err(err).Msg("Command failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "alumniportal",
		Short: "Alumni portal API server",
		Long: `Alumni portal API server.

Alumni register with a profile, log in for an API token and read a home
screen of events, internships and recently joined alumni.
Runs the HTTP server when no subcommand is given.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: configs/config.yaml)")

	serve := newServeCommand(&configPath)
	root.RunE = serve.RunE
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve)
	root.AddCommand(newMigrateCommand(&configPath))
	root.AddCommand(newSeedCommand(&configPath))
	return root
}
