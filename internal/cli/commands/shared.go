package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/astraweave/core/pkg/config"
)

// loadEnvAndConfig loads <config-dir>/.env (if present) then
// <config-dir>/astraweave.yaml, mirroring the teacher's main.go startup
// order. A missing .env is not an error — only a missing or invalid
// astraweave.yaml is.
func loadEnvAndConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	configDir, err := cmd.Flags().GetString("config-dir")
	if err != nil {
		return nil, err
	}

	envPath := filepath.Join(configDir, ".env")
	if err := godotenv.Load(envPath); err != nil {
		slog.Debug("no .env file loaded", "path", envPath, "error", err)
	}

	cfg, err := config.Initialize(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("loading configuration from %s: %w", configDir, err)
	}
	return cfg, nil
}
