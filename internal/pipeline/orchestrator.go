// Package pipeline owns the tuning run.
//
// Ownership boundary:
// - the guard gate before any action
// - the real/dry-run execution mode branch
// - the fixed group order and the artifact persistence point inside it
//
// Pipeline does not define tunables (catalog) or artifact bytes (artifact).
package pipeline

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/danmuck/mactune/internal/artifact"
	"github.com/danmuck/mactune/internal/catalog"
	"github.com/danmuck/mactune/internal/console"
	"github.com/danmuck/mactune/internal/guard"
	"github.com/danmuck/mactune/internal/mode"
	"github.com/danmuck/mactune/internal/tools"
)

// Orchestrator sequences guard, tuning groups, artifact persistence, and the
// final UI refresh for one run.
type Orchestrator struct {
	Guard      guard.Checker
	Controller Controller
	Persister  artifact.Persister
	Out        io.Writer
	Log        zerolog.Logger
}

// New wires an orchestrator for the live host. Tests and the self-test suite
// construct Orchestrator directly to inject fakes.
func New(m mode.Mode, runner tools.Runner, artifactRoot string, out io.Writer, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		Guard:      guard.Host{},
		Controller: Controller{Mode: m, Runner: runner, Out: out, Log: log},
		Persister:  artifact.Persister{Mode: m, Root: artifactRoot, Out: out, Log: log},
		Out:        out,
		Log:        log,
	}
}

// Run executes the fixed tuning sequence. A guard or artifact failure
// propagates and aborts the run; every tunable-setting action is fail-soft.
// There is no rollback: each action is idempotent, so recovery after an
// interruption is running again.
func (o *Orchestrator) Run() error {
	if err := o.Guard.Verify(); err != nil {
		return err
	}

	console.Linef(o.Out, "applying dedicated-server tuning (mode=%s)", o.Controller.Mode)
	o.Log.Info().Str("mode", o.Controller.Mode.String()).Msg("tuning run started")

	for _, g := range catalog.TuningGroups() {
		o.Controller.ApplyGroup(g)
	}
	if err := o.Persister.PersistAll(); err != nil {
		return err
	}
	for _, g := range catalog.FinishGroups() {
		o.Controller.ApplyGroup(g)
	}

	console.Linef(o.Out, "server tuning complete")
	o.Log.Info().Msg("tuning run finished")
	return nil
}
