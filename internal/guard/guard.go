// Package guard verifies the execution context before any tunable is touched.
package guard

import (
	"errors"
	"fmt"
	"os"
	"runtime"
)

var (
	// ErrPermissionDenied reports a caller without root privilege.
	ErrPermissionDenied = errors.New("guard: root privilege required")
	// ErrUnsupportedPlatform reports a host that is not macOS.
	ErrUnsupportedPlatform = errors.New("guard: macOS host required")
)

// Checker gates a run. A Verify error is fatal: the pipeline must not start.
type Checker interface {
	Verify() error
}

// Host checks the live process identity and platform. Probe funcs are
// injectable so tests can model non-root callers and non-darwin hosts.
type Host struct {
	Euid func() int
	GOOS func() string
}

// Verify returns nil only for a root caller on a darwin host.
func (h Host) Verify() error {
	euid := os.Geteuid
	if h.Euid != nil {
		euid = h.Euid
	}
	goos := runtime.GOOS
	if h.GOOS != nil {
		goos = h.GOOS()
	}
	if id := euid(); id != 0 {
		return fmt.Errorf("%w: run with sudo (euid=%d)", ErrPermissionDenied, id)
	}
	if goos != "darwin" {
		return fmt.Errorf("%w: detected %s", ErrUnsupportedPlatform, goos)
	}
	return nil
}

// Nop satisfies Checker without inspecting the host. The self-test suite
// injects it when exercising the full pipeline entry point.
type Nop struct{}

func (Nop) Verify() error { return nil }
