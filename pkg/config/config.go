package config

// Config is the loaded, validated engine configuration returned by
// Initialize and threaded through the scheduler, planners, and
// validator at startup.
type Config struct {
	configDir string

	Dt         float64          `yaml:"dt"`
	Validate   ValidateConfig   `yaml:"validate"`
	Perception PerceptionConfig `yaml:"perception"`
	GOAP       GOAPConfig       `yaml:"goap"`
	Arbiter    ArbiterConfig    `yaml:"arbiter"`
	LLM        LLMConfig        `yaml:"llm"`
}

// ConfigDir returns the directory Initialize loaded this Config from.
func (c *Config) ConfigDir() string {
	return c.configDir
}
