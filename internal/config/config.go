// Package config loads the flat sketch configuration from
// ~/.sketch/config.yaml, with environment overrides for settings that
// change per invocation.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultModel is used when the config file names none.
const DefaultModel = "claude-sonnet-4-20250514"

// Config represents the flat sketch configuration
type Config struct {
	APIKey  string `yaml:"api_key,omitempty"`
	Model   string `yaml:"model,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	DataDir string `yaml:"data_dir,omitempty"`

	// ActiveSpaceID is the space chat and canvas commands target when
	// no explicit space flag is given.
	ActiveSpaceID string `yaml:"active_space_id,omitempty"`
}

// Load reads the config file and applies environment overrides. A
// missing file is not an error: defaults plus environment win.
func Load() (*Config, error) {
	cfg := &Config{}

	path, err := configPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	applyEnv(cfg)
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return cfg, nil
}

// Save writes the config file, creating the data directory if needed.
func Save(cfg *Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("SKETCH_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("SKETCH_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("SKETCH_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
}

func configPath() (string, error) {
	if dir := os.Getenv("SKETCH_DATA_DIR"); dir != "" {
		return filepath.Join(dir, "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".sketch", "config.yaml"), nil
}
