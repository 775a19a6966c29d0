// Package mode owns the run-wide execution mode.
//
// The mode is decided exactly once at process start from the single CLI
// argument and passed by value from there; nothing mutates it mid-run.
package mode

// Mode selects between applying tunables and logging what would be applied.
type Mode int

const (
	// Real invokes every tunable-setting operation against the live host.
	Real Mode = iota
	// Simulated logs each operation without invoking it.
	Simulated
)

const dryRunArg = "--dry-run"

// Parse maps the optional CLI argument to a Mode. Only the literal --dry-run
// selects Simulated; any other value, including empty, falls back to Real.
// The fail-open fallback matches the historical CLI surface and is kept on
// purpose.
func Parse(arg string) Mode {
	if arg == dryRunArg {
		return Simulated
	}
	return Real
}

func (m Mode) String() string {
	if m == Simulated {
		return "dry-run"
	}
	return "real"
}
