package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the storefront client
type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
}

// APIConfig holds the backend endpoint configuration
type APIConfig struct {
	BaseURL        string `yaml:"base_url" envconfig:"BASE_URL"`
	TimeoutSeconds int    `yaml:"timeout_seconds" envconfig:"TIMEOUT_SECONDS"`
}

// SessionConfig holds the session persistence configuration
type SessionConfig struct {
	File string `yaml:"file" envconfig:"FILE"`
}

// Timeout returns the per-request transport timeout.
func (c *APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads configuration from a YAML file, then applies any
// STOREFRONT_* environment overrides on top.
func Load(filename string) (*Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	config := &Config{}
	scanner := bufio.NewScanner(file)

	var currentSection string

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Check for section headers
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			currentSection = strings.TrimSuffix(line, ":")
			continue
		}

		// Parse key-value pairs
		if strings.Contains(line, ":") {
			parts := strings.SplitN(line, ":", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if err := config.setValue(currentSection, key, value); err != nil {
				return nil, fmt.Errorf("failed to set config value %s.%s: %w", currentSection, key, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := envconfig.Process("storefront", config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// setValue sets a configuration value based on section and key
func (c *Config) setValue(section, key, value string) error {
	switch section {
	case "api":
		return c.setAPIValue(key, value)
	case "session":
		return c.setSessionValue(key, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

// setAPIValue sets backend endpoint configuration values
func (c *Config) setAPIValue(key, value string) error {
	switch key {
	case "base_url":
		c.API.BaseURL = value
	case "timeout_seconds":
		timeout, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid timeout value: %w", err)
		}
		c.API.TimeoutSeconds = timeout
	default:
		return fmt.Errorf("unknown api key: %s", key)
	}
	return nil
}

// setSessionValue sets session persistence configuration values
func (c *Config) setSessionValue(key, value string) error {
	switch key {
	case "file":
		c.Session.File = value
	default:
		return fmt.Errorf("unknown session key: %s", key)
	}
	return nil
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.TimeoutSeconds < 0 {
		return fmt.Errorf("api.timeout_seconds must not be negative")
	}
	return nil
}
