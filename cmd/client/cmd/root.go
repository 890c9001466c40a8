// cmd/client/cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"admingrid/internal/app/client"
	"admingrid/internal/app/client/config"
	"admingrid/internal/utils/logger"
)

var (
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	debug     bool
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "admingrid",
	Short: "admingrid - terminal admin console for REST collection backends",
	Long: `admingrid loads JSON collections from REST admin backends, renders
them as sortable, filterable, groupable tables, and pushes inline edits
back via PUT/PATCH/DELETE.

Collections and their grid configuration (columns, secrets, field
coercions, grouping) live in the yaml config file in the config
directory.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	cfg = config.MustLoad()

	// Command-line flags override the configuration.
	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}
	if debug {
		cfg.LogLevel = "debug"
		cfg.Env = logger.EnvLocal
	}

	log = logger.New(cfg.Env)

	var err error
	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("init application: %w", err)
	}

	cmd.SetContext(client.NewContext(cmd.Context(), app))
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "backend address, host:port")

	// Subcommands register themselves in init.go.
}
