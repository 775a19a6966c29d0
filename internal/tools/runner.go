package tools

import (
	"errors"
	"fmt"
	"os/exec"
)

// Runner abstracts host command execution so tuning actions can be exercised
// against fakes.
type Runner interface {
	Run(name string, args ...string) (string, error)
}

// ExecRunner executes commands on the local host.
type ExecRunner struct{}

// Run returns combined stdout/stderr; a nonzero exit is reported through the
// error with the exit code attached.
func (ExecRunner) Run(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err == nil {
		return string(out), nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(out), fmt.Errorf("%s exited %d: %w", name, exitErr.ExitCode(), err)
	}
	return string(out), err
}
