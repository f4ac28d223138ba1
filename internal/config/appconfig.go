package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	appConfigDir  = ".config/shellkit"
	appConfigFile = "config.yaml"
)

// LoadAppConfig loads ~/.config/shellkit/config.yaml, or the defaults when
// the file does not exist.
func LoadAppConfig() (*Config, error) {
	configPath := AppConfigPath()
	if configPath == "" {
		return nil, fmt.Errorf("getting home directory: cannot locate %s", appConfigFile)
	}

	return LoadOrDefault(configPath)
}

// SaveAppConfig saves the configuration to ~/.config/shellkit/config.yaml
func SaveAppConfig(cfg *Config) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("getting home directory: %w", err)
	}

	configDir := filepath.Join(home, appConfigDir)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	configPath := filepath.Join(configDir, appConfigFile)

	data, err := marshalYAML(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	content := fmt.Sprintf("# shellkit configuration\n# Aliases, environment, plugins and tools used by 'shellkit init'\n\n%s", string(data))

	// Use 0600 permissions to restrict access to owner only
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// AppConfigPath returns the path where the app config is stored.
// Returns an empty string if the home directory cannot be determined.
func AppConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, appConfigDir, appConfigFile)
}
