// Package logging configures the zerolog diagnostic stream. Diagnostics go
// to stderr; the user-facing tuning transcript is owned by internal/console.
package logging

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	EnvLogLevel     = "MACTUNE_LOG_LEVEL"
	EnvLogTimestamp = "MACTUNE_LOG_TIMESTAMP"
	EnvLogNoColor   = "MACTUNE_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Config carries the resolved logging knobs for one process.
type Config struct {
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
}

var levelOnce sync.Once

// ConfigureRuntime builds the process logger, honoring the configured level
// and environment overrides.
func ConfigureRuntime(level string) zerolog.Logger {
	return Configure(ProfileRuntime, level)
}

// ConfigureTests builds a debug-level logger without timestamps for
// deterministic test output.
func ConfigureTests() zerolog.Logger {
	return Configure(ProfileTest, "")
}

// Configure resolves the profile defaults, the explicit level (usually from
// the tool config), and environment overrides, in that precedence order.
// The global zerolog level is set once per process.
func Configure(profile Profile, level string) zerolog.Logger {
	cfg := defaultConfig(profile)
	if lvl, ok := parseLevel(level); ok {
		cfg.Level = lvl
	}
	applyEnvOverrides(&cfg)
	levelOnce.Do(func() {
		zerolog.SetGlobalLevel(cfg.Level)
	})
	return New(cfg)
}

// New builds a console-format logger from an explicit config.
func New(cfg Config) zerolog.Logger {
	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    cfg.NoColor,
	}
	ctx := zerolog.New(writer).Level(cfg.Level).With().Str("app", "mactune")
	if cfg.Timestamp {
		ctx = ctx.Timestamp()
	}
	return ctx.Logger()
}

func defaultConfig(profile Profile) Config {
	switch profile {
	case ProfileTest:
		return Config{Level: zerolog.DebugLevel, Timestamp: false}
	default:
		return Config{Level: zerolog.InfoLevel, Timestamp: true}
	}
}

func applyEnvOverrides(cfg *Config) {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		cfg.Level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		cfg.Timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		cfg.NoColor = v
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}
