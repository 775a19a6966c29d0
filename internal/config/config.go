// Package config loads the optional operator config. Every field has a safe
// default so the tool runs configless on a stock host.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// EnvConfigPath overrides the config location.
	EnvConfigPath = "MACTUNE_CONFIG"
	// DefaultPath is consulted when the environment names nothing.
	DefaultPath = "/etc/mactune.toml"
)

// Config carries operator overrides for one run.
type Config struct {
	// ArtifactRoot re-roots artifact destinations, "/" on a live host.
	ArtifactRoot string `toml:"artifact_root"`
	LogLevel     string `toml:"log_level"`
}

// Default returns the configless behavior.
func Default() Config {
	return Config{ArtifactRoot: "/", LogLevel: "info"}
}

// ResolvePath picks the config location from the environment or the default.
func ResolvePath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads path when it exists and falls back to defaults when it does
// not. Parse and validation failures are errors; a missing file is not.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	if strings.TrimSpace(cfg.ArtifactRoot) == "" {
		cfg.ArtifactRoot = "/"
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = "info"
	}
	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

// Validate enforces the field constraints Load relies on.
func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.ArtifactRoot) == "" {
		return fmt.Errorf("missing artifact_root")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.LogLevel)) {
	case "trace", "debug", "info", "warn", "warning", "error", "disabled", "off", "none":
		return nil
	default:
		return fmt.Errorf("unknown log_level: %q", cfg.LogLevel)
	}
}
