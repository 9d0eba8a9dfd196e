package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zeusmes/sapbridge/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Zeus-facing HTTP bridge",
	Long: `Start the HTTP server Zeus calls:

  GET  /api/status     SAP connectivity check
  POST /crear-orden    create a process order (COR1)
  POST /liberar-orden  release a process order (COR2)
  GET  /metrics        Prometheus metrics
  GET  /healthz        process liveness

Requests are serialized against the single SAP GUI session; concurrent
requests wait their turn and eventually get a busy response.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "Listen address (overrides config, default :5000)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
		cfg.Listen = listen
	}

	b, metrics := newBridge(cfg)
	srv := server.New(log, b, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe(cfg.Listen)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down, waiting for in-flight transaction")
		// A running script must finish; SAP has no rollback.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
