package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI configuration, read from a YAML file with
// environment variable fallbacks.
type Config struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	BaseURL  string `yaml:"base_url"`
	LogLevel string `yaml:"log_level"`
	Pretty   bool   `yaml:"pretty"`
}

// loadConfig reads a YAML config file. An empty path yields an empty
// config so that environment variables alone can drive the CLI.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("config file not found: %s", path)
			}
			return nil, fmt.Errorf("cannot read config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv fills unset fields from the environment.
func (c *Config) applyEnv() {
	if c.Email == "" {
		c.Email = os.Getenv("IRACING_EMAIL")
	}
	if c.Password == "" {
		c.Password = os.Getenv("IRACING_PASSWORD")
	}
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv("IRACING_BASE_URL")
	}
	if c.LogLevel == "" {
		c.LogLevel = os.Getenv("IRACING_LOG_LEVEL")
	}
}

func (c *Config) validate() error {
	if c.Email == "" || c.Password == "" {
		return errors.New("email and password are required, set them in the config file or via IRACING_EMAIL and IRACING_PASSWORD")
	}
	return nil
}
