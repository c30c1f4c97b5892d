// Package config loads process settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvLogLevel = "IRIS_MCP_LOG_LEVEL"
	EnvLogFile  = "IRIS_MCP_LOG_FILE"
	EnvPresets  = "IRIS_MCP_PRESETS"
	EnvBackend  = "IRIS_MCP_BACKEND"
)

// DefaultEnvFile is read by Load when present.
const DefaultEnvFile = ".env"

// Config holds the process settings.
type Config struct {
	// LogLevel is debug, info, warn or error.
	LogLevel string

	// LogFile enables a rotating JSON log file when set.
	LogFile string

	// PresetsFile is a YAML file of pipeline preset overrides.
	PresetsFile string

	// Backend names the image processing backend ("native" or "opencv").
	Backend string
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Backend:  "native",
	}
}

// Load reads envFile (DefaultEnvFile when empty) into the environment
// without overriding variables that are already set, then builds a Config
// from the environment. A missing env file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading %s: %w", envFile, err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, falling back to Default for unset
// variables.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvLogFile); ok {
		cfg.LogFile = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvPresets); ok {
		cfg.PresetsFile = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvBackend); ok && v != "" {
		cfg.Backend = strings.TrimSpace(v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the log level. Backend names are checked when the
// backend is initialized.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("invalid %s %q: want debug, info, warn or error", EnvLogLevel, c.LogLevel)
	}
}
