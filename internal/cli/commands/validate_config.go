package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewValidateConfigCommand returns the `astraweaved validate-config`
// command: load astraweave.yaml and report whether it merges and
// validates cleanly, without starting anything.
func NewValidateConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-config",
		Short: "Load and validate astraweave.yaml without starting a world",
		RunE:  runValidateConfig,
	}
}

func runValidateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadEnvAndConfig(cmd.Context(), cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "config OK: dt=%v los_max=%d max_nodes=%d budget_ms=%d\n",
		cfg.Dt, cfg.Perception.LosMax, cfg.GOAP.MaxNodes, cfg.Arbiter.BudgetMs)
	return nil
}
