package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/astraweave/core/pkg/scheduler"
	"github.com/astraweave/core/pkg/world"
)

// NewRunCommand returns the `astraweaved run` command: load config, build
// an empty world on the configured scheduler, and advance it headlessly
// for a fixed number of ticks. Useful for smoke-testing a config file's
// dt and validate/perception settings without an HTTP surface.
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a world headlessly for a fixed number of ticks",
		RunE:  runRun,
	}
	cmd.Flags().Int("ticks", 1, "number of fixed ticks to run")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadEnvAndConfig(ctx, cmd)
	if err != nil {
		return err
	}

	ticks, err := cmd.Flags().GetInt("ticks")
	if err != nil {
		return err
	}
	if ticks <= 0 {
		return fmt.Errorf("--ticks must be positive, got %d", ticks)
	}

	w := world.New()
	app := scheduler.New(w, cfg.Dt, slog.Default())
	app.RunFixed(ticks)

	slog.Info("run complete", "ticks", ticks, "world_t", w.Time())
	return nil
}
