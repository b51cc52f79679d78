// Package cli holds the reciters command tree: serve, migrate, stats and
// version.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/reciters/internal/config"
	"github.com/deppfellow/reciters/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
)

var rootCmd = &cobra.Command{
	Use:   "reciters",
	Short: "Reciter registration and results service",
	Long: "reciters serves the reciter registry and graded results over HTTP, " +
		"and manages the PostgreSQL schema behind them.",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "reciters %s (commit: %s)\n", version, commit)
	},
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// SetVersionInfo is called from main with values injected by -ldflags.
func SetVersionInfo(v, c string) {
	version = v
	commit = c
}

// bootstrap loads the configuration and builds the logger every command
// shares. Callers must Shutdown the returned service.
func bootstrap() (*config.Config, zerolog.Logger, *logger.LoggerService, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, zerolog.Nop(), nil, fmt.Errorf("loading config: %w", err)
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}

	return cfg, logger.NewLoggerWithService(cfg.Observability, loggerService), loggerService, nil
}
