package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigError is a configuration validation error.
type ConfigError string

func (e ConfigError) Error() string {
	return string(e)
}

const (
	ErrMissingAuth ConfigError = "missing authentication: set APPLAUDE_TOKEN or add api.token to the config file"
)

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := getConfigPath()
	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			// Config file is optional.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	loadFromEnv(cfg)
	cfg.normalize()
	return cfg, nil
}

// getConfigPath returns the path to the config file.
func getConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "applaude", "config.yaml")
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "applaude", "config.yaml")
}

// GetConfigDir returns the directory holding the config file and log file.
func GetConfigDir() string {
	return filepath.Dir(getConfigPath())
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	// Expand environment variables in the config file
	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// loadFromEnv loads configuration from environment variables.
func loadFromEnv(cfg *Config) {
	if token := os.Getenv("APPLAUDE_TOKEN"); token != "" {
		cfg.API.Token = token
	}
	if baseURL := os.Getenv("APPLAUDE_API_URL"); baseURL != "" {
		cfg.API.BaseURL = baseURL
	}
	if host := os.Getenv("APPLAUDE_WS_HOST"); host != "" {
		cfg.Chat.WSHost = host
	}
	if room := os.Getenv("APPLAUDE_ROOM"); room != "" {
		cfg.Chat.Room = room
	}
	if user := os.Getenv("APPLAUDE_USERNAME"); user != "" {
		cfg.API.Username = user
	}
}

// normalize derives the websocket host and scheme from the API base URL
// when not set explicitly, so the stream mirrors the page's transport
// security.
func (c *Config) normalize() {
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Host == "" {
		return
	}
	if c.Chat.WSHost == "" {
		c.Chat.WSHost = u.Host
	}
	if u.Scheme == "https" {
		c.Chat.Secure = true
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.Token == "" {
		return ErrMissingAuth
	}
	if c.Chat.Room == "" {
		return ConfigError("chat.room must not be empty")
	}
	return nil
}

// Save saves the configuration to the config file.
func (c *Config) Save() error {
	configPath := getConfigPath()
	if configPath == "" {
		return fmt.Errorf("could not determine config path")
	}

	// 0700: the file may hold a token.
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write to temp file then rename (atomic on POSIX systems).
	tmpPath := configPath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmpPath, configPath); err != nil {
		if err := os.WriteFile(configPath, data, 0600); err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}
	}
	return nil
}
