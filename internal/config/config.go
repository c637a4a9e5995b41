// Package config loads the sirocco configuration from an optional file
// (YAML or JSON) overlaid with ZEPHYR_* environment variables. All ambient
// reads happen here; the rest of the program receives explicit values.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"sirocco/internal/zephyr"
)

// Environment variable names, shared with the original deployment scripts.
const (
	EnvBaseURL   = "ZEPHYR_BASE_URL"
	EnvUsername  = "ZEPHYR_USERNAME"
	EnvPassword  = "ZEPHYR_PASSWORD"
	EnvAccessKey = "ZEPHYR_ACCESS_KEY"
)

// Config carries everything needed to reach a Zephyr instance and shape
// the program's behavior.
type Config struct {
	BaseURL   string `yaml:"base_url" json:"base_url"`
	Username  string `yaml:"username" json:"username"`
	Password  string `yaml:"password" json:"password"`
	AccessKey string `yaml:"access_key" json:"access_key"`

	// Workers bounds the per-cycle fetch fan-out; 0 keeps the engine
	// default.
	Workers int `yaml:"workers" json:"workers"`

	// LogLevel is a slog level name ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level" json:"log_level"`
}

// Load reads the configuration file at path (empty path means no file),
// then overlays environment variables. Environment values win over file
// values so deployments can override a checked-in config.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		cfg, err = Parse(data, filepath.Ext(path))
		if err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

// Parse parses configuration from bytes. ext is the file extension
// (".yaml", ".yml", ".json") as a format hint; empty means detect from
// content.
func Parse(data []byte, ext string) (*Config, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == ".yaml" {
		var c Config
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
		return &c, nil
	}
	if ext == ".json" {
		var c Config
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
		return &c, nil
	}
	// Detect: JSON starts with {, everything else is YAML.
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		var c Config
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
		return &c, nil
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	return &c, nil
}

// applyEnv overlays non-empty ZEPHYR_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvUsername); v != "" {
		c.Username = v
	}
	if v := os.Getenv(EnvPassword); v != "" {
		c.Password = v
	}
	if v := os.Getenv(EnvAccessKey); v != "" {
		c.AccessKey = v
	}
}

// Validate checks the connection settings: a base URL plus either an
// access key or a username/password pair.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("config: base URL is required (set base_url or %s)", EnvBaseURL)
	}
	if c.AccessKey == "" && (c.Username == "" || c.Password == "") {
		return fmt.Errorf("config: credentials required (set access_key/%s, or username and password)", EnvAccessKey)
	}
	return nil
}

// ClientConfig maps the loaded settings onto the Zephyr client's explicit
// configuration value.
func (c *Config) ClientConfig() zephyr.Config {
	return zephyr.Config{
		BaseURL:   c.BaseURL,
		Username:  c.Username,
		Password:  c.Password,
		AccessKey: c.AccessKey,
	}
}
