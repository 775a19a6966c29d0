// Package selftest verifies every tuning subsystem with independent probes.
//
// Each probe builds its own mode, fake runner, and capture buffer, exercises
// exactly one action group, renderer, persister path, guard, or the full
// pipeline entry point, and asserts one observable property. Probes never
// touch live host state: anything filesystem-shaped happens under a
// throwaway root, and anything command-shaped hits a recording fake.
package selftest

import (
	"fmt"
	"io"
)

// Result is one probe outcome.
type Result struct {
	Probe  string
	Pass   bool
	Detail string
}

// Probe is one independent verification unit. Run returns nil on pass; the
// error text becomes the failure detail.
type Probe struct {
	Name string
	Run  func() error
}

// Run executes probes in order, writing [PASS]/[FAIL] lines and a summary
// to w. Every probe runs even after failures so one report covers the whole
// suite.
func Run(w io.Writer, probes []Probe) []Result {
	results := make([]Result, 0, len(probes))
	for _, p := range probes {
		res := Result{Probe: p.Name, Pass: true}
		if err := p.Run(); err != nil {
			res.Pass = false
			res.Detail = err.Error()
		}
		results = append(results, res)
		if res.Pass {
			fmt.Fprintf(w, "[PASS] %s\n", p.Name)
		} else {
			fmt.Fprintf(w, "[FAIL] %s\n  | %s\n", p.Name, res.Detail)
		}
	}

	passCount := 0
	for _, r := range results {
		if r.Pass {
			passCount++
		}
	}
	fmt.Fprintf(w, "\nSummary\n  Probes: total=%d pass=%d fail=%d\n",
		len(results), passCount, len(results)-passCount)
	return results
}

// Passed reports whether every probe passed. The suite result is binary.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Pass {
			return false
		}
	}
	return len(results) > 0
}
