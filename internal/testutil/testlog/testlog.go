// Package testlog bootstraps per-test logging.
package testlog

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/danmuck/mactune/internal/logging"
)

// Start configures the test logging profile and returns a logger scoped to
// the running test.
func Start(t *testing.T) zerolog.Logger {
	t.Helper()
	logger := logging.ConfigureTests().With().Str("test", t.Name()).Logger()
	logger.Debug().Msg("test start")
	return logger
}
