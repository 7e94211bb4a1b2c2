// Package config provides configuration loading and validation for the
// server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Config is the server configuration. Values can come from a JSON file, the
// environment, or CLI flags; later sources win field by field.
type Config struct {
	Port        int    `json:"port,omitempty" validate:"omitempty,min=1,max=65535"`
	APIKey      string `json:"api_key,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`
	JWTSecret   string `json:"jwt_secret,omitempty"`
	UseBrowser  bool   `json:"use_browser,omitempty"`
	Verbose     bool   `json:"verbose,omitempty"`
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("IDENTITY_JWT_SECRET"),
	}
	if port := os.Getenv("PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil {
			cfg.Port = n
		}
	}
	return cfg
}

// Merge fills c's zero-valued fields from other and returns the result.
// Boolean fields are ORed since false is indistinguishable from unset.
func (c Config) Merge(other Config) Config {
	result := c
	if result.Port == 0 {
		result.Port = other.Port
	}
	if result.APIKey == "" {
		result.APIKey = other.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = other.DatabaseURL
	}
	if result.JWTSecret == "" {
		result.JWTSecret = other.JWTSecret
	}
	result.UseBrowser = result.UseBrowser || other.UseBrowser
	result.Verbose = result.Verbose || other.Verbose
	return result
}

// Validate checks that the configuration is usable for serving.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("config error: a Gemini API key is required (GEMINI_API_KEY or api_key)")
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}
