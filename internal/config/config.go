package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

type Config struct {
	// Endpoint overrides the build-time chat endpoint when set.
	Endpoint string `yaml:"endpoint,omitempty"`
	// Page is a markdown portfolio file. Empty means the built-in page.
	Page     string `yaml:"page,omitempty"`
	LogFile  string `yaml:"log_file,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
	Watch    bool   `yaml:"watch,omitempty"`
}

// LoadDotEnv reads .env from the working directory if present. A missing
// file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// LoadConfig reads config.yaml, falling back to defaults when it does not
// exist, then applies environment overrides.
func LoadConfig() (*Config, error) {
	config, err := ReadConfigFile()
	if err != nil {
		return nil, err
	}

	config.applyEnvOverrides()
	if err := config.applyDefaults(); err != nil {
		return nil, err
	}
	return config, nil
}

// ReadConfigFile returns only what config.yaml holds, with no environment
// overrides or defaults. A missing file yields an empty Config.
func ReadConfigFile() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	config := &Config{}
	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}
	return config, nil
}

// Keys lists the settings Set accepts, by their YAML names.
var Keys = []string{"endpoint", "page", "log_file", "log_level", "watch"}

// Set assigns one setting by its YAML name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "endpoint":
		c.Endpoint = value
	case "page":
		c.Page = value
	case "log_file":
		c.LogFile = value
	case "log_level":
		if value != "" {
			if _, err := zapcore.ParseLevel(value); err != nil {
				return fmt.Errorf("invalid log_level %q: %w", value, err)
			}
		}
		c.LogLevel = value
	case "watch":
		watch, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid watch value %q: %w", value, err)
		}
		c.Watch = watch
	default:
		return fmt.Errorf("unknown config key %q (want one of %s)", key, strings.Join(Keys, ", "))
	}
	return nil
}

// Path is where LoadConfig and SaveConfig read and write.
func Path() (string, error) {
	return getConfigPath()
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("PORTFOLIO_ENDPOINT")); v != "" {
		c.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv("PORTFOLIO_PAGE")); v != "" {
		c.Page = v
	}
	if v := strings.TrimSpace(os.Getenv("PORTFOLIO_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) applyDefaults() error {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFile == "" {
		dir, err := GetConfigDir()
		if err != nil {
			return fmt.Errorf("resolve config dir: %w", err)
		}
		c.LogFile = filepath.Join(dir, "portfolio.log")
	}
	return nil
}

func SaveConfig(config *Config) error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
