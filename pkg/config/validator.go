package config

import "fmt"

// validateConfig checks the loaded Config for internally-inconsistent
// values standard YAML unmarshalling can't catch on its own.
func validateConfig(cfg *Config) error {
	if cfg.Dt <= 0 {
		return NewValidationError("dt", fmt.Errorf("%w: must be positive, got %v", ErrInvalidValue, cfg.Dt))
	}
	if cfg.Perception.LosMax < 0 {
		return NewValidationError("perception.los_max", fmt.Errorf("%w: must be non-negative, got %d", ErrInvalidValue, cfg.Perception.LosMax))
	}
	if cfg.GOAP.MaxNodes < 0 {
		return NewValidationError("goap.max_nodes", fmt.Errorf("%w: must be non-negative, got %d", ErrInvalidValue, cfg.GOAP.MaxNodes))
	}
	if cfg.Arbiter.BudgetMs <= 0 {
		return NewValidationError("arbiter.budget_ms", fmt.Errorf("%w: must be positive, got %d", ErrInvalidValue, cfg.Arbiter.BudgetMs))
	}
	if cfg.LLM.RegistryFormat != "" && cfg.LLM.RegistryFormat != "toml" && cfg.LLM.RegistryFormat != "json" {
		return NewValidationError("llm.registry_format", fmt.Errorf("%w: must be \"toml\" or \"json\", got %q", ErrInvalidValue, cfg.LLM.RegistryFormat))
	}
	return nil
}
