// Package cli wires the astraweaved root cobra command and its
// subcommands, following the teacher's cmd/tarsy/main.go composition
// root (load .env → load config → construct subsystems → run) but
// split across cobra subcommands the way bartekus-stagecraft's
// internal/cli/root.go dispatches to internal/cli/commands.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/astraweave/core/internal/cli/commands"
)

// NewRootCommand constructs the astraweaved root command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "astraweaved",
		Short:         "astraweaved runs and serves a deterministic AstraWeave world",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config-dir", getEnv("CONFIG_DIR", "./deploy/config"),
		"path to the directory holding astraweave.yaml and .env")

	cmd.AddCommand(commands.NewRunCommand())
	cmd.AddCommand(commands.NewServeCommand())
	cmd.AddCommand(commands.NewValidateConfigCommand())

	return cmd
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
