// Package config loads the kvsettings CLI configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level kvsettings configuration.
type Config struct {
	SettingsPath string  `yaml:"settings_path" mapstructure:"settings_path"`
	Journal      Journal `yaml:"journal" mapstructure:"journal"`
	Logging      Logging `yaml:"logging" mapstructure:"logging"`
}

// Journal controls the mutation journal.
type Journal struct {
	Path    string `yaml:"path,omitempty" mapstructure:"path"`
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
}

// Logging controls the log file.
type Logging struct {
	Level string `yaml:"level" mapstructure:"level"`
	Path  string `yaml:"path,omitempty" mapstructure:"path"`
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func newViper() *viper.Viper {
	v := viper.New()
	defaults := DefaultConfig()
	v.SetDefault("settings_path", defaults.SettingsPath)
	v.SetDefault("journal.enabled", defaults.Journal.Enabled)
	v.SetDefault("journal.path", defaults.Journal.Path)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.path", defaults.Logging.Path)

	v.SetEnvPrefix("KVSETTINGS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from path. A missing file is not an error; the
// defaults are returned instead.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(expandPath(path))
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadFromYAML loads config from YAML bytes - helper for tests
func LoadFromYAML(data []byte) (*Config, error) {
	v := newViper()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return unmarshal(v)
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.SettingsPath = expandPath(cfg.SettingsPath)
	cfg.Journal.Path = expandPath(cfg.Journal.Path)
	cfg.Logging.Path = expandPath(cfg.Logging.Path)
	return &cfg, nil
}

var validLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// Validate checks the configured values.
func (c *Config) Validate() error {
	if c.Logging.Level == "" {
		return nil
	}
	for _, level := range validLevels {
		if strings.EqualFold(c.Logging.Level, level) {
			return nil
		}
	}
	return fmt.Errorf("invalid logging level %q (valid: %s)", c.Logging.Level, strings.Join(validLevels, ", "))
}
