package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the default kvsettings configuration. Empty paths
// resolve to the XDG locations at runtime.
func DefaultConfig() *Config {
	return &Config{
		Journal: Journal{
			Enabled: true,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// DefaultYAML renders the default configuration as YAML.
func DefaultYAML() ([]byte, error) {
	return DefaultConfig().YAML()
}

// YAML renders the configuration as YAML.
func (c Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}
