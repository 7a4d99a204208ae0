package llmiface

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadRegistryTOML reads a ToolRegistry from a TOML file at path, the
// format spec §6.1 names first ("Tool registry TOML/JSON schema").
func LoadRegistryTOML(path string) (ToolRegistry, error) {
	var reg ToolRegistry
	if _, err := toml.DecodeFile(path, &reg); err != nil {
		return ToolRegistry{}, fmt.Errorf("llmiface: decode TOML registry %s: %w", path, err)
	}
	return reg, nil
}

// LoadRegistryJSON reads a ToolRegistry from a JSON file at path, the
// schema's alternate encoding.
func LoadRegistryJSON(path string) (ToolRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ToolRegistry{}, fmt.Errorf("llmiface: read JSON registry %s: %w", path, err)
	}
	var reg ToolRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return ToolRegistry{}, fmt.Errorf("llmiface: decode JSON registry %s: %w", path, err)
	}
	return reg, nil
}
