package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/astraweave/core/pkg/api"
	"github.com/astraweave/core/pkg/scheduler"
	"github.com/astraweave/core/pkg/world"
)

// NewServeCommand returns the `astraweaved serve` command: load config,
// build a world on the configured scheduler, and expose it over
// pkg/api's introspection HTTP surface until interrupted.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a world over HTTP until interrupted",
		RunE:  runServe,
	}
	cmd.Flags().String("addr", ":8080", "address to listen on")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadEnvAndConfig(ctx, cmd)
	if err != nil {
		return err
	}
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}

	registry, err := cfg.LLM.LoadRegistry()
	if err != nil {
		return err
	}

	w := world.New()
	app := scheduler.New(w, cfg.Dt, slog.Default())
	srv := api.NewServer(app, registry, slog.Default())

	errCh := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", addr)
		errCh <- srv.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
