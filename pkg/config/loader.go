package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// YAMLConfig mirrors astraweave.yaml's structure. Every field is a
// pointer/zero-valued override; unset fields fall through to Default().
type YAMLConfig struct {
	Dt         *float64          `yaml:"dt,omitempty"`
	Validate   *ValidateConfig   `yaml:"validate,omitempty"`
	Perception *PerceptionConfig `yaml:"perception,omitempty"`
	GOAP       *GOAPConfig       `yaml:"goap,omitempty"`
	Arbiter    *ArbiterConfig    `yaml:"arbiter,omitempty"`
	LLM        *LLMConfig        `yaml:"llm,omitempty"`
}

// Initialize loads, merges, and validates astraweave.yaml from configDir.
//
// Steps performed:
//  1. Read astraweave.yaml
//  2. Expand environment variables
//  3. Parse YAML into a YAMLConfig
//  4. Merge onto Default() (user values override, unset fields keep defaults)
//  5. Resolve human-readable duration strings
//  6. Validate
func Initialize(ctx context.Context, configDir string) (*Config, error) {
	log := slog.With("config_dir", configDir)
	log.Info("initializing configuration")

	cfg, err := load(ctx, configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	log.Info("configuration initialized", "dt", cfg.Dt, "los_max", cfg.Perception.LosMax)
	return cfg, nil
}

func load(_ context.Context, configDir string) (*Config, error) {
	loader := &configLoader{configDir: configDir}

	yamlCfg, err := loader.loadAstraweaveYAML()
	if err != nil {
		return nil, NewLoadError("astraweave.yaml", err)
	}

	cfg := Default()

	if yamlCfg.Dt != nil {
		cfg.Dt = *yamlCfg.Dt
	}
	if yamlCfg.Validate != nil {
		if err := mergo.Merge(&cfg.Validate, yamlCfg.Validate, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge validate config: %w", err)
		}
	}
	if yamlCfg.Perception != nil {
		if err := mergo.Merge(&cfg.Perception, yamlCfg.Perception, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge perception config: %w", err)
		}
	}
	if yamlCfg.GOAP != nil {
		if err := mergo.Merge(&cfg.GOAP, yamlCfg.GOAP, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge goap config: %w", err)
		}
	}
	if yamlCfg.Arbiter != nil {
		if err := mergo.Merge(&cfg.Arbiter, yamlCfg.Arbiter, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge arbiter config: %w", err)
		}
	}
	if yamlCfg.LLM != nil {
		if err := mergo.Merge(&cfg.LLM, yamlCfg.LLM, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("failed to merge llm config: %w", err)
		}
	}

	cfg.configDir = configDir
	return cfg, nil
}

type configLoader struct {
	configDir string
}

func (l *configLoader) loadYAML(filename string, target any) error {
	path := filepath.Join(l.configDir, filename)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return err
	}

	data = ExpandEnv(data)

	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return nil
}

func (l *configLoader) loadAstraweaveYAML() (*YAMLConfig, error) {
	var cfg YAMLConfig
	if err := l.loadYAML("astraweave.yaml", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// BaseCooldown parses Arbiter.BaseCooldownStr, falling back to 2s on an
// empty or unparseable value (the same fallback shape
// resolveRunbooksConfig uses for cache_ttl).
func (c *Config) BaseCooldown() time.Duration {
	return parseDurationOr(c.Arbiter.BaseCooldownStr, 2*time.Second)
}

// MaxCooldown parses Arbiter.MaxCooldownStr, falling back to 60s.
func (c *Config) MaxCooldown() time.Duration {
	return parseDurationOr(c.Arbiter.MaxCooldownStr, 60*time.Second)
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		slog.Warn("invalid duration in arbiter config, using default",
			"value", s, "default", fallback, "error", err)
		return fallback
	}
	return d
}
