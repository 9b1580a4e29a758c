package config

import (
	"os"
	"path/filepath"
)

const appName = "portfolio"

// GetConfigDir returns the per-user config directory.
// Windows: %APPDATA%/portfolio
// Linux/macOS: $XDG_CONFIG_HOME/portfolio or ~/.config/portfolio
func GetConfigDir() (string, error) {
	if configHome := os.Getenv("PORTFOLIO_CONFIG_HOME"); configHome != "" {
		return configHome, nil
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName), nil
	}

	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", appName), nil
}

func getConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}
