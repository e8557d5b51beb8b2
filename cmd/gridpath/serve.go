package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/gridpath/internal/ctxlog"
	"github.com/katalvlaran/gridpath/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search engine over HTTP and WebSocket",
	Long: `Starts the HTTP server:

  POST /api/search   search one board
  GET  /api/random   generate a board
  GET  /api/ws       WebSocket, one search per message
  GET  /healthz      liveness

Stops gracefully on interrupt.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := settings
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(cfg, ctxlog.FromContext(cmd.Context())).Run(ctx)
}
