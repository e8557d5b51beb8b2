// Package main provides the gridpath CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridpath/config"
	"github.com/katalvlaran/gridpath/internal/ctxlog"
)

// Version is the current gridpath version.
var Version = "0.3.0"

var rootCmd = &cobra.Command{
	Use:   "gridpath",
	Short: "gridpath - A* pathfinding on editable grids",
	Long: `gridpath finds paths on rectangular grids of open cells and walls with an
A* search (orthogonal cost 10, diagonal cost 14, corner-gated diagonals).

Boards are plain text, one row per line: '.' open, '#' wall, 'S' start, 'E' end.`,
	Version:           Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the gridpath version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "gridpath %s\n", Version)
		return err
	},
}

// Global flags and the configuration they resolve to.
var (
	configPath string
	logLevel   string
	settings   config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadSettings reads the config file, applies global flag overrides and
// installs the logger in the command context.
func loadSettings(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	settings = cfg

	logger := ctxlog.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), logger))
	logger.Debug("settings loaded", "config", configPath, "command", cmd.Name())

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
