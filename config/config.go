// Package config loads YAML configuration with environment variable
// expansion and validates it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

// Config holds all client settings.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Session   SessionConfig   `yaml:"session"`
	Search    SearchConfig    `yaml:"search"`
	Directory DirectoryConfig `yaml:"directory"`
	Log       LogConfig       `yaml:"log"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL        string        `yaml:"base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

func (c APIConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.RequestTimeout, validation.Min(time.Second)),
	)
}

// SessionConfig holds token persistence settings.
type SessionConfig struct {
	TokenPath string `yaml:"token_path"`
}

// SearchConfig controls the chat search request.
type SearchConfig struct {
	Limit int `yaml:"limit"`
}

func (c SearchConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Limit, validation.Required, validation.Min(1), validation.Max(50)),
	)
}

// DirectoryConfig controls the candidate directory view.
type DirectoryConfig struct {
	Limit    int           `yaml:"limit"`
	Debounce time.Duration `yaml:"debounce"`
}

func (c DirectoryConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Limit, validation.Required, validation.Min(1), validation.Max(1000)),
		validation.Field(&c.Debounce, validation.Required, validation.Min(10*time.Millisecond)),
	)
}

// LogConfig holds log file settings. The TUI owns the terminal, so logs
// always go to a file.
type LogConfig struct {
	File string `yaml:"file"`
}

// Validate validates the whole configuration.
func (c *Config) Validate() error {
	if err := c.API.Validate(); err != nil {
		return err
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	return c.Directory.Validate()
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000",
			RequestTimeout: 60 * time.Second,
		},
		Search:    SearchConfig{Limit: 3},
		Directory: DirectoryConfig{Limit: 100, Debounce: 300 * time.Millisecond},
	}
}

// Load reads a YAML file into target with environment variable expansion
// and validates the result.
func Load(filename string, target *Config) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}

	if err := target.Validate(); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// LoadOrDefault loads filename when it exists and falls back to defaults
// otherwise. An empty filename always yields defaults.
func LoadOrDefault(filename string) (*Config, error) {
	cfg := Default()
	if filename == "" {
		return cfg, nil
	}
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err := Load(filename, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// TokenPath resolves the token file location, defaulting to
// <user config dir>/skillsense/token.
func (c *Config) TokenPath() (string, error) {
	if c.Session.TokenPath != "" {
		return c.Session.TokenPath, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "skillsense", "token"), nil
}

// LogFile resolves the log file location, defaulting to
// <user config dir>/skillsense/client.log.
func (c *Config) LogFile() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "skillsense", "client.log"), nil
}
