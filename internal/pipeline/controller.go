package pipeline

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/danmuck/mactune/internal/catalog"
	"github.com/danmuck/mactune/internal/console"
	"github.com/danmuck/mactune/internal/mode"
	"github.com/danmuck/mactune/internal/observability"
	"github.com/danmuck/mactune/internal/tools"
)

// Controller wraps every tunable-setting call, branching between real
// invocation and logged simulation.
//
// Real-mode failures never stop the pipeline: tunables are independent and
// best-effort, so one rejected setting must not halt the rest. The discarded
// error is retained on the debug stream and in the outcome counters.
type Controller struct {
	Mode   mode.Mode
	Runner tools.Runner
	Out    io.Writer
	Log    zerolog.Logger
}

// Apply runs one catalog action under the controller's mode. It reports
// nothing to the caller: in real mode a rejected tunable and an applied one
// look the same from the pipeline's point of view.
func (c Controller) Apply(group string, act catalog.Action) {
	if c.Mode == mode.Simulated {
		console.DryRunf(c.Out, "%s", act.Description)
		observability.RecordSimulated(group)
		return
	}
	console.Linef(c.Out, "%s", act.Description)
	out, err := c.Runner.Run(act.Command, act.Args...)
	if err != nil {
		c.Log.Debug().
			Err(err).
			Str("group", group).
			Str("action", act.ID).
			Str("output", strings.TrimSpace(out)).
			Msg("tunable rejected, continuing")
		observability.RecordSoftFailure(group)
		return
	}
	observability.RecordApplied(group)
}

// ApplyGroup runs every action of one group in order.
func (c Controller) ApplyGroup(g catalog.Group) {
	console.Linef(c.Out, "-- %s", g.Name)
	for _, act := range g.Actions {
		c.Apply(g.Name, act)
	}
}
